// Package pocket is the Composition Root for the Pocket application.
//
// It connects the core business logic (Domain Layer) with the infrastructure adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Pocket is the storage engine of a local-first note organizer. It treats a pair
// of ordered collections (groups and their notes) as a transactional database,
// abstracting the underlying storage mechanism. While the default implementation
// uses the File System with optional Git versioning, Pocket's core is agnostic,
// allowing alternative adapters (SQLite, memory).
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Write-Through**: Every mutation is durable before it returns; memory and storage never disagree.
//   - **Session Selection**: A Workspace tracks the group new notes are filed under.
//   - **Live Reload**: External changes to the stored slots are detected and folded back in.
//   - **Default Adapter (FS + Git)**: Out-of-the-box support for local JSON slots with Git history.
//   - **Extensible**: Designed to support other backends via `core.Repository`.
//
// Usage:
//
//	// Open a workspace with functional options
//	ws, err := pocket.Open("./notes",
//		pocket.WithAutoInit(true),
//		pocket.WithLogger(logger),
//	)
//
//	// Create a group and file a note under it
//	group, err := ws.CreateGroup(ctx, "Groceries", pocket.ColorCyan)
//	ws.Select(group.ID)
//	note, err := ws.AddNote(ctx, "buy oat milk")
package pocket
