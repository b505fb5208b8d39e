package task

import "context"

// Repository is the persistence port for the two collections.
// Saves replace the whole stored collection with the given snapshot.
type Repository interface {
	// LoadTasks returns all stored tasks in their saved order.
	LoadTasks(ctx context.Context) ([]*Task, error)

	// LoadBlocks returns all stored time blocks.
	LoadBlocks(ctx context.Context) ([]*Block, error)

	// SaveTasks replaces the stored tasks.
	SaveTasks(ctx context.Context, tasks []*Task) error

	// SaveBlocks replaces the stored time blocks.
	SaveBlocks(ctx context.Context, blocks []*Block) error

	// Close releases any resources held by the repository.
	Close() error
}
