// Package cpu implements the instruction decoder and micro-cycle engine for
// an LC-3 style 16-bit processor.
//
// The CPU consists of eight 16-bit general-purpose registers (R0-R7), a
// program counter, N/Z/P condition flags, a word addressed memory and the
// A, B, R, MAR, MDR and SEXT latches of the data path. Every instruction is
// executed through six phases: FETCH, DECODE, EVAL_ADDR, FETCH_OP, EXECUTE
// and STORE. The latches of the instruction being executed live in a Cycle
// that is discarded once STORE completes.
//
// Memory is indexed by raw position. StartAddress only relabels memory for
// display; it does not relocate loads and stores.
package cpu
