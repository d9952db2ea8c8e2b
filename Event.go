/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package comsa

import (
	"fmt"
	"time"
)

const (
	EvtCompressionStart   = 0 // Per-alignment compression starts
	EvtDecompressionStart = 1 // Per-alignment decompression starts
	EvtBeforeTransform    = 2 // Transpose/PBWT/second-stage/RLE starts
	EvtAfterTransform     = 3 // Transpose/PBWT/second-stage/RLE ends
	EvtBeforeEntropy      = 4 // Range coding starts
	EvtAfterEntropy       = 5 // Range coding ends
	EvtCompressionEnd     = 6 // Per-alignment compression ends
	EvtDecompressionEnd   = 7 // Per-alignment decompression ends
	EvtFamilyDone         = 8 // One archive family finished
)

// Event describes a pipeline progress notification.
type Event struct {
	eventType int
	id        int
	size      int64
	eventTime time.Time
	msg       string
}

// NewEventFromString creates an Event wrapping a plain message.
func NewEventFromString(evtType, id int, msg string, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, id: id, msg: msg, eventTime: evtTime}
}

// NewEvent creates an Event carrying a size (bytes processed so far).
func NewEvent(evtType, id int, size int64, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, id: id, size: size, eventTime: evtTime}
}

// Type returns the event type.
func (this *Event) Type() int {
	return this.eventType
}

// ID returns the family/alignment index the event refers to.
func (this *Event) ID() int {
	return this.id
}

// Time returns the event timestamp.
func (this *Event) Time() time.Time {
	return this.eventTime
}

// Size returns the size info carried by the event.
func (this *Event) Size() int64 {
	return this.size
}

// String returns a human-readable representation of the event.
func (this *Event) String() string {
	if len(this.msg) > 0 {
		return this.msg
	}

	t := ""

	switch this.eventType {
	case EvtBeforeTransform:
		t = "BEFORE_TRANSFORM"
	case EvtAfterTransform:
		t = "AFTER_TRANSFORM"
	case EvtBeforeEntropy:
		t = "BEFORE_ENTROPY"
	case EvtAfterEntropy:
		t = "AFTER_ENTROPY"
	case EvtCompressionStart:
		t = "COMPRESSION_START"
	case EvtDecompressionStart:
		t = "DECOMPRESSION_START"
	case EvtCompressionEnd:
		t = "COMPRESSION_END"
	case EvtDecompressionEnd:
		t = "DECOMPRESSION_END"
	case EvtFamilyDone:
		t = "FAMILY_DONE"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"id\":%d, \"size\":%d, \"time\":%d }",
		t, this.id, this.size, this.eventTime.UnixNano()/1000000)
}

// Listener is implemented by event processors (e.g. the CLI progress line).
type Listener interface {
	ProcessEvent(evt *Event)
}
