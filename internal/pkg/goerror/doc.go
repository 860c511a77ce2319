// Package goerror defines the structured error used between the usecase layer
// and the command line.
//
// Usecases return *Error values classified by Type and Code; the CLI turns the
// Code into a process exit code with ExitCode.
package goerror
