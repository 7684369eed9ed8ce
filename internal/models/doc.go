// Package models defines the persisted records for the Policy Expert API.
//
// Three tables back the service:
//   - Claim: one insurance claim filed against a policy. Claims are
//     produced by the external intake pipeline; this API only reads them.
//   - CustomerPolicy: one row per customer describing held insurance
//     lines, keyed by customer name.
//   - CustomerInfo: a 3-column projection consumed by the UI.
//
// Customer name acts as the natural key across all three tables. There
// is no foreign key between them; claims correlate to customers by the
// plain name string. Real names collide, so the key is fragile, but it
// matches the upstream data set and the agents that feed it.
//
// Update payloads (PolicyUpdate, CustomerInfoUpdate) carry pointer
// fields and apply through explicit per-field merge functions, so only
// the fields a client actually supplied can change a stored record.
package models
