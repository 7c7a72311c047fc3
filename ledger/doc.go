// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger produces the cosmetic identifiers shown on vote receipts.

Nothing here is cryptographically meaningful. The "blockchain" is simulated;
a transaction hash is random hex that looks like a ledger reference.

# Transaction Hashes

	hash := ledger.GenerateTxHash() // "0x" + 40 lowercase hex chars
	ok := ledger.ValidTxHash(hash)

# Logging

ShortHash abbreviates a hash for log output:

	slog.Info("receipt issued", "tx", ledger.ShortHash(hash))
*/
package ledger
