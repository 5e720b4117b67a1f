// ledgerctl is the administrative companion to the ledger API server. It
// talks to the same database directly: migrations, account administration and
// the snapshot audit, without going through HTTP.
package main

func main() {
	Execute()
}
