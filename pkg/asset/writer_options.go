package asset

import "go.uber.org/zap"

// WriterOption is a functor to provide the writer with options
type WriterOption func(*Writer)

// WriterLogger injects a logger in the writer
func WriterLogger(l *zap.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.l = l
		}
	}
}

// WriterDryRun makes the writer check sources without writing anything
func WriterDryRun(dryRun bool) WriterOption {
	return func(w *Writer) {
		w.dryRun = dryRun
	}
}

// WriterDirMode sets the permissions of the directories created by the writer
func WriterDirMode(mode uint32) WriterOption {
	return func(w *Writer) {
		if mode != 0 {
			w.dirMode = mode
		}
	}
}
