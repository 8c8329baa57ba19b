package sensors

import "context"

// Source es la fuente de lecturas inyectada en el Monitor.
// Start/Stop delimitan su ciclo de vida; Snapshot hace una lectura.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Snapshot(ctx context.Context) (Snapshot, error)
}

// SnapshotCache guarda la última lectura (memoria o Redis).
type SnapshotCache interface {
	Get(ctx context.Context) (Snapshot, bool, error)
	Set(ctx context.Context, s Snapshot) error
}
