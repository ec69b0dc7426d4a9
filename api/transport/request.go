package transport

import (
	"encoding/json"
	"strconv"

	"github.com/valyala/fasthttp"
)

// TaskPayload carries the mutable task fields from a request body. Pointer
// fields distinguish an absent key from a zero value, so completed=false is
// a valid edit.
type TaskPayload struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// ParseTaskPayload decodes the JSON body. A body that is not valid JSON is
// tolerated by falling back to URL-encoded form fields.
func ParseTaskPayload(body []byte, form *fasthttp.Args) TaskPayload {
	var payload TaskPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload
	}

	if form == nil {
		return payload
	}
	if form.Has("title") {
		title := string(form.Peek("title"))
		payload.Title = &title
	}
	if form.Has("completed") {
		if completed, err := strconv.ParseBool(string(form.Peek("completed"))); err == nil {
			payload.Completed = &completed
		}
	}
	return payload
}

// HasTitle reports whether a usable title was supplied. An empty title is
// treated the same as a missing one.
func (p TaskPayload) HasTitle() bool {
	return p.Title != nil && *p.Title != ""
}

// HasCompleted reports whether the completed key was present at all.
func (p TaskPayload) HasCompleted() bool {
	return p.Completed != nil
}
