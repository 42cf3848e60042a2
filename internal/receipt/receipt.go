// Package receipt records which destination message was created for each
// source message, so a finished run can be audited or resumed by hand.
package receipt

// Entry links one source message to the destination message created for it.
type Entry struct {
	SourceID  string `json:"source_id"`
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
}

// Receipts is an insert-ordered map from source message ID to the
// destination message created for it. Each import invocation gets a fresh
// one.
type Receipts struct {
	order   []string
	entries map[string]Entry
}

// New creates an empty receipts map.
func New() *Receipts {
	return &Receipts{entries: make(map[string]Entry)}
}

// Record stores the destination ref for a source message and reports
// whether it was stored. The first write for a source wins; later writes
// are ignored. Messages without a source ID are not recorded.
func (r *Receipts) Record(sourceID, messageID, channelID string) bool {
	if sourceID == "" {
		return false
	}
	if _, ok := r.entries[sourceID]; ok {
		return false
	}
	r.entries[sourceID] = Entry{
		SourceID:  sourceID,
		MessageID: messageID,
		ChannelID: channelID,
	}
	r.order = append(r.order, sourceID)
	return true
}

// Lookup returns the entry recorded for a source message.
func (r *Receipts) Lookup(sourceID string) (Entry, bool) {
	e, ok := r.entries[sourceID]
	return e, ok
}

// Len returns the number of recorded entries.
func (r *Receipts) Len() int {
	return len(r.order)
}

// Entries returns the recorded entries in insertion order.
func (r *Receipts) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}
