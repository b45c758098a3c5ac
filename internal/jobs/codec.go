package jobs

import (
	"encoding/json"
	"fmt"
)

func EncodePayload(t JobType, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}

	switch t {
	case JobSubmissionReceipt:
		_, ok := payload.(SubmissionReceiptPayload)

		if !ok {
			_, ok2 := payload.(*SubmissionReceiptPayload)

			if !ok2 {
				return nil, ErrPayloadTypeMismatch
			}
		}

	case JobStudyReminder:
		_, ok := payload.(StudyReminderPayload)

		if !ok {
			_, ok2 := payload.(*StudyReminderPayload)

			if !ok2 {
				return nil, ErrPayloadTypeMismatch
			}
		}
	}

	b, err := json.Marshal(payload)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	return b, nil
}

// DecodePayload unmarshals job.Payload into the correct typed payload struct.
func DecodePayload(j Job) (any, error) {
	if !j.Type.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(j.Payload) == 0 {
		return nil, ErrInvalidJobPayload
	}

	switch j.Type {
	case JobSubmissionReceipt:
		var p SubmissionReceiptPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	case JobStudyReminder:
		var p StudyReminderPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidJobType
	}
}
