// Package evmabi lowers Ethereum contract ABI events to type IR and to
// imported entity descriptors.
package evmabi
