// Package output holds everything a child process printed during one run.
//
// Buffer keeps two views of the same byte stream: the complete, unmodified
// log used to replay output when the command fails, and the single most
// recent line used for the live status display. Line splitting happens here;
// producers hand over raw chunks exactly as they were read.
package output
