// Package queue defines message payloads exchanged over the message broker.
package queue

// PartialWriteEvent is published when a dual-write committed to the
// relational store but the document store rejected the write.  It is an
// audit record: nothing consumes it to repair the stores.
type PartialWriteEvent struct {
    Entity       string `json:"entity"`        // "inventory" or "location"
    Operation    string `json:"operation"`     // currently always "create"
    RelationalID string `json:"relational_id"` // id of the committed relational row
    UserID       int64  `json:"user_id"`       // caller that issued the write
    Cause        string `json:"cause"`         // document store error text
    OccurredAt   string `json:"occurred_at"`   // RFC3339 UTC timestamp
}
