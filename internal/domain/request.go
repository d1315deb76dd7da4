package domain

import "path/filepath"

type OperationKind string

const (
	OperationCopy   OperationKind = "copy"
	OperationDelete OperationKind = "delete"
)

// Operation is a unit of work the runner can execute.
type Operation interface {
	Kind() OperationKind
	// Target is the path the operation writes to or removes.
	Target() string
}

// CopyRequest mirrors SourceRoot[/Subfolder] onto DestRoot[/Subfolder].
// An empty Subfolder copies the contents of the whole root.
type CopyRequest struct {
	Subfolder  string
	SourceRoot string
	DestRoot   string
}

func (r CopyRequest) Kind() OperationKind { return OperationCopy }

func (r CopyRequest) Target() string { return r.DestPath() }

func (r CopyRequest) SourcePath() string {
	return joinSubfolder(r.SourceRoot, r.Subfolder)
}

func (r CopyRequest) DestPath() string {
	return joinSubfolder(r.DestRoot, r.Subfolder)
}

// DeleteRequest removes TargetPath and everything below it.
type DeleteRequest struct {
	TargetPath string
}

func (r DeleteRequest) Kind() OperationKind { return OperationDelete }

func (r DeleteRequest) Target() string { return filepath.Clean(r.TargetPath) }

func joinSubfolder(root, subfolder string) string {
	if subfolder == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(root, subfolder)
}
