package pipeline

import "errors"

var (
	ErrUnknownStage        = errors.New("unknown stage")
	ErrBuild               = errors.New("image build failed")
	ErrRun                 = errors.New("stage run failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
)
