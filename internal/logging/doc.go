// Package logger provides leveled logging for Kestrel CLI commands.
//
// Verbosity is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug details and errors
//
// Without flags only user-facing warnings are printed, so command output
// stays limited to results.
//
// # Log Methods
//
//	Logger.Infof()           // --verbose or --debug
//	Logger.Debugf()          // --debug only
//	Logger.Warnf()           // --verbose or --debug
//	Logger.WarnfUser()       // always, user-facing wording
//	Logger.Errorf()          // --debug only
//	Logger.ErrorfAndReturn() // logs like Errorf and returns the error
//
// Commands create a logger in their PersistentPreRun and pass it down.
package logger
