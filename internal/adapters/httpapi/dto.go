package httpapi

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"time"

	"eventreg/internal/domain/entities"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type userSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type meResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registrationRequest struct {
	EventID eventID `json:"eventId"`
}

// eventID accepts both 12 and "12", as browser clients often forward ids
// read from the URL as strings.
type eventID int64

var jsonInt64 = reflect.TypeOf(int64(0))

func (id *eventID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: jsonInt64, Field: "eventId"}
		}
		*id = eventID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: jsonInt64, Field: "eventId"}
	}
	*id = eventID(n)
	return nil
}

type eventResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Organizer   string     `json:"organizer"`
	Location    string     `json:"location"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
	Capacity    int        `json:"capacity"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toEventResponse(e entities.Event) eventResponse {
	resp := eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Organizer:   e.Organizer,
		Location:    e.Location,
		Description: e.Description,
		Capacity:    e.Capacity,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if !e.Date.IsZero() {
		date := e.Date
		resp.Date = &date
	}
	return resp
}

func toEventResponses(events []entities.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

type filterOptionsResponse struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

func toFilterOptionsResponse(o *entities.FilterOptions) filterOptionsResponse {
	resp := filterOptionsResponse{Categories: []string{}, Locations: []string{}}
	if o == nil {
		return resp
	}
	if o.Categories != nil {
		resp.Categories = o.Categories
	}
	if o.Locations != nil {
		resp.Locations = o.Locations
	}
	return resp
}
