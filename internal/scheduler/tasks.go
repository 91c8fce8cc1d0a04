package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadNotification = "leads.notification.send"

// LeadNotificationPayload carries everything the worker needs to deliver
// one notification email without reading the database.
type LeadNotificationPayload struct {
	To        string `json:"to"`
	FormName  string `json:"formName"`
	LeadName  string `json:"leadName"`
	LeadEmail string `json:"leadEmail"`
	Source    string `json:"source"`
	LeadScore int    `json:"leadScore"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

func NewLeadNotificationTask(payload LeadNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadNotification, data), nil
}

func ParseLeadNotificationPayload(task *asynq.Task) (LeadNotificationPayload, error) {
	var payload LeadNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadNotificationPayload{}, err
	}
	return payload, nil
}
