package entity

import (
	"encoding/json"
	"time"
)

// AuditLog es una fila append-only del rastro de auditoría. Nunca se actualiza
// ni se borra. Checksum encadena cada fila con la anterior de la misma entidad
// (hash-chaining) para que una alteración sea detectable.
type AuditLog struct {
	ID              string
	CompanyID       string
	EntityType      string // asset, company, user, movement, workorder
	EntityID        string
	Action          string // asset.create, asset.update, movement.approve, ...
	ActorID         string
	Before          json.RawMessage // snapshot previo, nil en creaciones
	After           json.RawMessage // snapshot posterior, nil en borrados
	ComplianceEvent bool
	PrevChecksum    string // checksum de la fila anterior de esta entidad, "" en la primera
	Checksum        string
	CreatedAt       time.Time
}
