// Package cli is the interactive shell of the decretos client.
//
// It wires the remote HTTP client, the local sqlite backup store, the event
// bus and the sync engine together, then drops into a read–eval–print loop.
//
// Commands
//
//	help            — show available commands
//	list [pa|fl]    — list permit records, optionally one partition
//	emp             — list the employee roster
//	add             — add a permit record (interactive)
//	del <id>        — delete a permit record
//	addemp          — add an employee (interactive)
//	delemp <rut>    — delete an employee
//	undo            — revert the last record mutation
//	sync            — push the current dataset
//	refresh         — re-fetch both partitions and the roster
//	status          — per-partition sync status
//	exit | quit     — leave the program
//
// Parse warnings accumulated during a refresh are shown capped at twenty
// lines; the remainder is summarized.
package cli
