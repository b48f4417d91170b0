// Package audit escribe el rastro de auditoría con encadenamiento de hashes.
// Cada fila incluye el checksum de la anterior de la misma entidad; alterar o
// borrar una fila intermedia rompe la cadena y es detectable.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Entry datos de un evento auditable. Before/After se serializan a JSON como
// snapshots; nil significa sin estado previo (create) o posterior (delete).
type Entry struct {
	CompanyID       string
	EntityType      string
	EntityID        string
	Action          string
	ActorID         string
	Before          any
	After           any
	ComplianceEvent bool
}

// Recorder construye y persiste filas de auditoría. Se invoca siempre dentro
// de la misma transacción que la mutación: si el append falla, la transacción
// completa se revierte. Una mutación que no se puede auditar no se comitea.
type Recorder struct{}

// NewRecorder construye el recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Append serializa los snapshots, encadena con el checksum de la última fila
// de la entidad y persiste. El repo debe estar atado a la transacción en curso.
func (r *Recorder) Append(ctx context.Context, repo repository.AuditLogRepository, at time.Time, e Entry) error {
	before, err := marshalSnapshot(e.Before)
	if err != nil {
		return fmt.Errorf("serializar snapshot previo: %w", err)
	}
	after, err := marshalSnapshot(e.After)
	if err != nil {
		return fmt.Errorf("serializar snapshot posterior: %w", err)
	}

	prev, err := repo.LastForEntity(ctx, e.EntityType, e.EntityID)
	if err != nil {
		return fmt.Errorf("leer última fila de auditoría: %w", err)
	}
	prevChecksum := ""
	if prev != nil {
		prevChecksum = prev.Checksum
	}

	row := &entity.AuditLog{
		ID:              uuid.New().String(),
		CompanyID:       e.CompanyID,
		EntityType:      e.EntityType,
		EntityID:        e.EntityID,
		Action:          e.Action,
		ActorID:         e.ActorID,
		Before:          before,
		After:           after,
		ComplianceEvent: e.ComplianceEvent,
		PrevChecksum:    prevChecksum,
		CreatedAt:       at,
	}
	row.Checksum = Checksum(row)

	if err := repo.Append(ctx, row); err != nil {
		return fmt.Errorf("append auditoría: %w", err)
	}
	return nil
}

// Checksum calcula el hash de la fila encadenado con el checksum previo.
func Checksum(row *entity.AuditLog) string {
	h := sha256.New()
	h.Write([]byte(row.PrevChecksum))
	h.Write([]byte(row.CompanyID))
	h.Write([]byte(row.EntityType))
	h.Write([]byte(row.EntityID))
	h.Write([]byte(row.Action))
	h.Write([]byte(row.ActorID))
	h.Write(row.Before)
	h.Write(row.After)
	h.Write([]byte(row.CreatedAt.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyChain recorre la historia de una entidad y devuelve el índice de la
// primera fila cuya cadena no cierra, o -1 si la cadena está íntegra.
func (r *Recorder) VerifyChain(ctx context.Context, repo repository.AuditLogRepository, entityType, entityID string) (int, error) {
	rows, err := repo.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return 0, fmt.Errorf("listar auditoría: %w", err)
	}
	prev := ""
	for i, row := range rows {
		if row.PrevChecksum != prev || Checksum(row) != row.Checksum {
			return i, nil
		}
		prev = row.Checksum
	}
	return -1, nil
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
