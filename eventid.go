package winlog

import (
	"unicode/utf16"

	"github.com/willibrandon/winlog/core"
)

// EventIDProvider computes the 16-bit event identifier recorded with each
// entry. Identifiers let the platform viewer filter and group entries
// without parsing payload text, so providers should return the same id for
// the same logical log statement every time.
type EventIDProvider interface {
	ComputeEventID(event *core.LogEvent) uint16
}

// HashEventIDProvider derives the event id by hashing the event's message
// template text. It is the default provider: the template, not the rendered
// message, is the stable identity of a log statement, so every occurrence of
// a statement carries the same id across runs and releases. Distinct
// templates may collide in the 16-bit space; that is accepted.
type HashEventIDProvider struct{}

func (HashEventIDProvider) ComputeEventID(event *core.LogEvent) uint16 {
	return hashEventID(event.MessageTemplate)
}

// FixedEventIDProvider records the same id for every event.
type FixedEventIDProvider struct {
	// ID is returned for every event.
	ID uint16
}

func (p FixedEventIDProvider) ComputeEventID(event *core.LogEvent) uint16 {
	return p.ID
}

// MapEventIDProvider looks the id up in an explicit template table. It suits
// deployments that reserve stable, documented ids per log statement.
type MapEventIDProvider struct {
	// IDs maps message template text to the id to record.
	IDs map[string]uint16

	// Fallback computes ids for templates missing from IDs. A nil Fallback
	// means the hash provider.
	Fallback EventIDProvider
}

func (p MapEventIDProvider) ComputeEventID(event *core.LogEvent) uint16 {
	if id, ok := p.IDs[event.MessageTemplate]; ok {
		return id
	}
	if p.Fallback != nil {
		return p.Fallback.ComputeEventID(event)
	}
	return hashEventID(event.MessageTemplate)
}

// hashEventID is the Jenkins one-at-a-time hash over the template's UTF-16
// code units, truncated to 16 bits. The exact arithmetic is load-bearing:
// ids recorded by earlier releases and by sibling sinks on other runtimes
// must keep matching, or saved viewer filters silently go stale. An empty
// template hashes to 0.
func hashEventID(template string) uint16 {
	var hash uint32
	for _, r := range template {
		if r < 0x10000 {
			hash = mixEventID(hash, uint32(r))
		} else {
			hi, lo := utf16.EncodeRune(r)
			hash = mixEventID(hash, uint32(hi))
			hash = mixEventID(hash, uint32(lo))
		}
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return uint16(hash & 0xFFFF)
}

func mixEventID(hash, unit uint32) uint32 {
	hash += unit
	hash += hash << 10
	hash ^= hash >> 6
	return hash
}
