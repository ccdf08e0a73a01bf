package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"

	"littlelemon/internal/authz"
	"littlelemon/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// authorizedCaller returns the request's caller once it may perform the
// action, so body errors never reach callers that would be refused anyway.
func authorizedCaller(c *fiber.Ctx, a authz.Action) (authz.Caller, error) {
	caller := middleware.CallerFrom(c)
	if err := authz.Authorize(caller, a); err != nil {
		return caller, err
	}
	return caller, nil
}

// bodyFields decodes a JSON object body into its raw members so handlers can
// tell an absent field from an explicit null. An empty body yields no fields.
func bodyFields(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, invalidBody(err)
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// rawInt accepts a JSON number or a numeric string, as form-style clients send both.
func rawInt(raw json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		v, err := n.Int64()
		return v, err == nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}
