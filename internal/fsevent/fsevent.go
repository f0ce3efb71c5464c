// Package fsevent decodes Firestore trigger CloudEvents. Eventarc delivers
// the document change as a protobuf DocumentEventData payload; this package
// unmarshals it and exposes loss-tolerant field accessors, since documents
// written by the mobile clients routinely omit optional fields.
package fsevent

import (
	"fmt"
	"strings"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"google.golang.org/protobuf/proto"
)

// Change is a decoded before/after pair. Before is nil for create events.
type Change struct {
	Before *firestoredata.Document
	After  *firestoredata.Document
}

// Decode unmarshals the event payload. It fails only on malformed payloads;
// events with a missing after-document are a framework contract violation and
// are rejected too.
func Decode(e cloudevents.Event) (*Change, error) {
	var data firestoredata.DocumentEventData
	if err := proto.Unmarshal(e.Data(), &data); err != nil {
		return nil, fmt.Errorf("proto.Unmarshal document event: %w", err)
	}
	if data.GetValue() == nil {
		return nil, fmt.Errorf("document event %q has no after-document", e.ID())
	}
	return &Change{Before: data.GetOldValue(), After: data.GetValue()}, nil
}

// DocumentID returns the last segment of the document resource name, e.g.
// "projects/p/databases/(default)/documents/scan_requests/abc123" → "abc123".
func (c *Change) DocumentID() string {
	name := c.After.GetName()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// String returns the named string field, or fallback when the field is
// missing, unset, or not a string.
func String(d *firestoredata.Document, field, fallback string) string {
	v, ok := d.GetFields()[field]
	if !ok {
		return fallback
	}
	if s := v.GetStringValue(); s != "" {
		return s
	}
	return fallback
}

// Bool returns the named boolean field, false when missing or not a boolean.
func Bool(d *firestoredata.Document, field string) bool {
	return d.GetFields()[field].GetBooleanValue()
}
