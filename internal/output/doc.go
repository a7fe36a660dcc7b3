// Package output provides structured output handling for the foldermap CLI.
//
// Commands report results either as human-readable text or, with --json, as
// structured JSON suitable for scripts. The report file itself is written by
// package report; this package only covers what goes to the terminal.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Wrote report", "output": path})
//	printer.Error(err)
//	printer.KeyValue("Database", path)
//	printer.Table([]string{"Folder", "Documents"}, rows)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: Bad arguments, database not found or ambiguous
//	output.ExitSystemError // 2: Query or I/O failure
//	output.ExitDataError   // 3: Inconsistent library data
//
// Errors built with NewUserError, NewSystemErrorWithCause and
// NewDataErrorWithCause carry their exit code and keep the cause reachable
// through errors.Is / errors.As.
package output
