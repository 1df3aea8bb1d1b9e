package webhook

import (
	"encoding/json"
	"net/url"
	"strings"

	"hookrelay/internal"
)

// documentBytes pulls the JSON document out of the request body: the body
// itself for JSON requests, the "payload" form field otherwise. Returns nil
// when there is no document to be had.
func documentBytes(body []byte, contentType string) []byte {
	if strings.Contains(contentType, "json") {
		return body
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil
	}
	if payload := values.Get("payload"); payload != "" {
		return []byte(payload)
	}
	return nil
}

func rawObjectAndFlatten(document []byte) (interface{}, map[string]interface{}) {
	var out interface{}
	if err := json.Unmarshal(document, &out); err != nil {
		return nil, map[string]interface{}{}
	}
	objectMap, ok := out.(map[string]interface{})
	if !ok {
		return out, map[string]interface{}{}
	}
	return out, internal.Flatten(objectMap)
}
