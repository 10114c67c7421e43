package request

import (
	"bytes"
	"encoding/json"

	"eventgo-ticketing/internal/usecase/commands"
)

// ReserveTicketsRequest accepts either {"event_id": 1, "seat_ids": [..]} or a bare
// array of seat ids, which older clients send.
type ReserveTicketsRequest struct {
	EventID *int64  `json:"event_id" binding:"omitempty,gt=0"`
	SeatIDs []int64 `json:"seat_ids" binding:"required,min=1,max=100,dive,gt=0"`
}

func (r *ReserveTicketsRequest) UnmarshalJSON(data []byte) error {
	if isJSONArray(data) {
		return json.Unmarshal(data, &r.SeatIDs)
	}
	type plain ReserveTicketsRequest
	return json.Unmarshal(data, (*plain)(r))
}

func (r *ReserveTicketsRequest) ToCommand() commands.ReserveRequest {
	return commands.ReserveRequest{
		EventID: r.EventID,
		SeatIDs: r.SeatIDs,
	}
}

// PurchaseTicketsRequest accepts {"ticket_ids": [..]} or a bare array.
type PurchaseTicketsRequest struct {
	TicketIDs []int64 `json:"ticket_ids" binding:"required,min=1,max=100,dive,gt=0"`
}

func (r *PurchaseTicketsRequest) UnmarshalJSON(data []byte) error {
	if isJSONArray(data) {
		return json.Unmarshal(data, &r.TicketIDs)
	}
	type plain PurchaseTicketsRequest
	return json.Unmarshal(data, (*plain)(r))
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
