package apiclient

import "apartium-backend/utils"

// Notifier surfaces the outcome of a mutation to the admin, the way a toast
// would.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes toasts to the shared logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { utils.Logger.Info(msg) }

func (LogNotifier) Error(msg string) { utils.Logger.Error(msg) }

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
