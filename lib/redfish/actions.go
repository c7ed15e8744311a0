// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package redfish

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Redfish resource paths used by fleet operations. The system and
// manager paths follow the standard schema; the aux power reset is an
// NVIDIA chassis OEM action.
const (
	systemResetPath   = "/redfish/v1/Systems/1/Actions/ComputerSystem.Reset"
	managerResetPath  = "/redfish/v1/Managers/1/Actions/Manager.Reset"
	auxPowerResetPath = "/redfish/v1/Chassis/BMC_0/Actions/Oem/NvidiaChassis.AuxPowerReset"
	updateServicePath = "/redfish/v1/UpdateService"
	taskListPath      = "/redfish/v1/TaskService/Tasks/"
)

// SystemForceOff immediately powers off the host system.
func (c *Client) SystemForceOff(ctx context.Context, record target.Record) error {
	return c.postAction(ctx, record, systemResetPath, map[string]string{"ResetType": "ForceOff"})
}

// SystemPowerCycle power-cycles the host system.
func (c *Client) SystemPowerCycle(ctx context.Context, record target.Record) error {
	return c.postAction(ctx, record, systemResetPath, map[string]string{"ResetType": "PowerCycle"})
}

// ManagerReset force-restarts the BMC itself. The host system keeps
// running; only the management controller reboots.
func (c *Client) ManagerReset(ctx context.Context, record target.Record) error {
	return c.postAction(ctx, record, managerResetPath, map[string]string{"ResetType": "ForceRestart"})
}

// AuxPowerCycle triggers the NVIDIA chassis auxiliary power reset,
// which cuts standby power to the tray.
func (c *Client) AuxPowerCycle(ctx context.Context, record target.Record) error {
	return c.postAction(ctx, record, auxPowerResetPath, map[string]string{"ResetType": "AuxPowerCycleForce"})
}

// UploadFirmware streams a firmware package to the BMC's update
// service. The file is sent directly, never buffered in memory, so
// multi-hundred-megabyte bundles keep a flat footprint. The BMC
// stages the image and creates an update task; track it with
// LatestTaskPercent.
func (c *Client) UploadFirmware(ctx context.Context, record target.Record, packagePath string) error {
	file, err := os.Open(packagePath)
	if err != nil {
		return fmt.Errorf("opening firmware package: %w", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("reading firmware package: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(record.Address, updateServicePath), file)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	request.ContentLength = info.Size()
	request.Header.Set("Content-Type", "application/octet-stream")
	request.SetBasicAuth(record.Username, record.Password)

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("uploading to %s: %w", record.Address, err)
	}
	defer response.Body.Close()

	if !accepted(response.StatusCode) {
		return &StatusError{
			Address: record.Address,
			Path:    updateServicePath,
			Status:  response.StatusCode,
			Body:    bodyExcerpt(response.Body),
		}
	}
	return nil
}

// taskCollection is the subset of the TaskService collection document
// the client needs: the member references.
type taskCollection struct {
	Members []struct {
		ID string `json:"@odata.id"`
	} `json:"Members"`
}

// taskDocument is the subset of an individual task document.
type taskDocument struct {
	PercentComplete int    `json:"PercentComplete"`
	TaskState       string `json:"TaskState"`
}

// TaskProgress describes the most recent BMC task.
type TaskProgress struct {
	ID      int
	Percent int
	State   string
}

// LatestTaskPercent finds the highest-numbered task on the BMC and
// returns its progress. Firmware updates create a new task per
// upload, so the highest ID is the one in flight.
func (c *Client) LatestTaskPercent(ctx context.Context, record target.Record) (TaskProgress, error) {
	var collection taskCollection
	if err := c.get(ctx, record, taskListPath, &collection); err != nil {
		return TaskProgress{}, err
	}
	if len(collection.Members) == 0 {
		return TaskProgress{}, fmt.Errorf("no tasks on %s", record.Address)
	}

	ids := make([]int, 0, len(collection.Members))
	for _, member := range collection.Members {
		segments := strings.Split(strings.TrimRight(member.ID, "/"), "/")
		id, err := strconv.Atoi(segments[len(segments)-1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return TaskProgress{}, fmt.Errorf("no numeric task IDs on %s", record.Address)
	}
	sort.Ints(ids)
	latest := ids[len(ids)-1]

	var task taskDocument
	path := fmt.Sprintf("%s%d", taskListPath, latest)
	if err := c.get(ctx, record, path, &task); err != nil {
		return TaskProgress{}, err
	}
	return TaskProgress{ID: latest, Percent: task.PercentComplete, State: task.TaskState}, nil
}
