package logger

import "log/slog"

// Error returns a slog attribute holding the error message under the
// "error" key. A nil error yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Errors returns a slog attribute holding multiple error messages under the
// "errors" key, skipping nils.
func Errors(errs ...error) slog.Attr {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) == 0 {
		return slog.Attr{}
	}
	return slog.Any("errors", msgs)
}
