package pocket

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/pocket/internal/platform"
	"github.com/aretw0/pocket/pkg/core"
)

// --- Types ---

// Group is a public alias for the core group entity.
type Group = core.Group

// Note is a public alias for the core note entity.
type Note = core.Note

// Color is a public alias for the palette color type.
type Color = core.Color

// Event is a public alias for the workspace event type.
type Event = core.Event

// EventType is a public alias for the workspace event kind.
type EventType = core.EventType

// View is a public alias for the selection-dependent projection.
type View = core.View

// The palette of colors a group may use.
const (
	ColorPurple = core.ColorPurple
	ColorPink   = core.ColorPink
	ColorCyan   = core.ColorCyan
	ColorSalmon = core.ColorSalmon
	ColorBlue   = core.ColorBlue
	ColorSky    = core.ColorSky

	// DefaultColor is assigned when a group is created without an explicit color.
	DefaultColor = core.DefaultColor
)

// Palette returns the fixed set of group colors in display order.
func Palette() []Color {
	return core.Palette()
}

// Common errors, re-exported so callers don't need to import pkg/core.
var (
	ErrEmptyName     = core.ErrEmptyName
	ErrDuplicateName = core.ErrDuplicateName
	ErrUnknownColor  = core.ErrUnknownColor
	ErrEmptyContent  = core.ErrEmptyContent
	ErrNoSelection   = core.ErrNoSelection
	ErrCorruptState  = core.ErrCorruptState
)

// --- Configuration ---

// Option defines a functional option for configuring Pocket.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the workspace (creates directory and storage).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables git-backed history for slot writes.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the workspace directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".pocket").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithEventBuffer allows specifying the size of each subscriber's event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock overrides the time source used for note timestamps and IDs.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithDevSafety controls the sandbox mechanism when running via `go run` or `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a loaded Store without session state. Most callers want
// Open; New is for embedding the store in a larger application that
// manages its own selection.
func New(path string, opts ...Option) (*core.Store, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly, without loading a store on top.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// Open creates a Workspace: a loaded store plus a fresh, empty selection.
func Open(path string, opts ...Option) (*Workspace, error) {
	store, err := platform.New(path, opts...)
	if err != nil {
		return nil, err
	}

	selection := &core.Selection{}
	return &Workspace{
		store:      store,
		selection:  selection,
		projection: core.NewProjection(store, selection),
	}, nil
}

// --- Workspace ---

// Workspace bundles a Store with a Selection and the Projection over the
// two. It is the session-level API: what the store knows plus which group
// the session is pointed at.
type Workspace struct {
	store      *core.Store
	selection  *core.Selection
	projection *core.Projection
}

// CreateGroup creates and persists a new group.
func (w *Workspace) CreateGroup(ctx context.Context, name string, color Color) (Group, error) {
	return w.store.CreateGroup(ctx, name, color)
}

// AddNote files a new note under the currently selected group. Without a
// selection it returns ErrNoSelection.
func (w *Workspace) AddNote(ctx context.Context, content string) (Note, error) {
	groupID, ok := w.selection.Current()
	if !ok {
		return Note{}, core.ErrNoSelection
	}
	return w.store.AddNote(ctx, groupID, content)
}

// AddNoteTo files a new note under an explicit group id, bypassing the
// selection.
func (w *Workspace) AddNoteTo(ctx context.Context, groupID, content string) (Note, error) {
	return w.store.AddNote(ctx, groupID, content)
}

// ListGroups returns all groups in insertion order.
func (w *Workspace) ListGroups() []Group {
	return w.store.ListGroups()
}

// ListNotes returns the notes of one group in insertion order.
func (w *Workspace) ListNotes(groupID string) []Note {
	return w.store.ListNotes(groupID)
}

// ListAllNotes returns every note in insertion order, regardless of group.
func (w *Workspace) ListAllNotes() []Note {
	return w.store.ListAllNotes()
}

// GetGroup looks up a group by id.
func (w *Workspace) GetGroup(id string) (Group, bool) {
	return w.store.GetGroup(id)
}

// Select makes the given group the target for new notes. An empty id
// clears the selection.
func (w *Workspace) Select(groupID string) {
	if groupID == "" {
		w.selection.Clear()
		return
	}
	w.selection.Select(groupID)
}

// ClearSelection returns the workspace to the no-selection state.
func (w *Workspace) ClearSelection() {
	w.selection.Clear()
}

// Selected returns the selected group id, and whether a selection exists.
func (w *Workspace) Selected() (string, bool) {
	return w.selection.Current()
}

// View computes the current selection-dependent view.
func (w *Workspace) View() View {
	return w.projection.Snapshot()
}

// Watch subscribes to workspace events. See core.Store.Watch.
func (w *Workspace) Watch(ctx context.Context) (<-chan Event, error) {
	return w.store.Watch(ctx)
}

// History returns recorded change descriptions if the storage keeps them,
// newest first.
func (w *Workspace) History(ctx context.Context, limit int) ([]string, error) {
	return w.store.History(ctx, limit)
}

// OrphanedNotes reports how many notes reference a group that does not exist.
func (w *Workspace) OrphanedNotes() int {
	return w.store.OrphanedNotes()
}

// CorruptRecovered lists the slots that were recovered from corruption
// during load.
func (w *Workspace) CorruptRecovered() []string {
	return w.store.CorruptRecovered()
}

// Store exposes the underlying store for advanced use (introspection,
// embedding).
func (w *Workspace) Store() *core.Store {
	return w.store
}

// Close releases the workspace and its storage. Close is idempotent.
func (w *Workspace) Close() error {
	return w.store.Close()
}

// --- Safety & Utils ---

// ResolveWorkspacePath determines the actual path for the workspace based on safety rules.
func ResolveWorkspacePath(userPath string, forceTemp bool) string {
	return platform.ResolveWorkspacePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindWorkspaceRoot recursively looks upwards for a workspace root indicator.
func FindWorkspaceRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Semantic Commits ---

const (
	CommitTypeFeat     = platform.CommitTypeFeat
	CommitTypeFix      = platform.CommitTypeFix
	CommitTypeDocs     = platform.CommitTypeDocs
	CommitTypeStyle    = platform.CommitTypeStyle
	CommitTypeRefactor = platform.CommitTypeRefactor
	CommitTypePerf     = platform.CommitTypePerf
	CommitTypeTest     = platform.CommitTypeTest
	CommitTypeChore    = platform.CommitTypeChore
)

// FormatChangeReason builds a Conventional Commit message for versioned history.
func FormatChangeReason(ctype, scope, subject, body string) string {
	return platform.FormatChangeReason(ctype, scope, subject, body)
}

// AppendFooter appends the Pocket footer to an arbitrary message.
func AppendFooter(msg string) string {
	return platform.AppendFooter(msg)
}

// WithChangeReason attaches a change description to ctx; versioned storage
// records it as the commit message for the next write.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, core.ChangeReasonKey, reason)
}
