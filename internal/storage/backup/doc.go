// Package backup writes and restores point-in-time copies of the
// address book.
//
// Each backup is a single checksummed file in the backup directory:
//
//	backup-<timestamp>-<sequence>.cub
//	[magic:8 "CUBACKUP"]
//	[HeaderLen:4][HeaderJSON:HeaderLen]
//	[DataLen:4][Data:DataLen]   (JSON persons, or nonce+ciphertext)
//	[checksum:32 SHA-256 of all bytes above]
//
// Files are written to a temp name and renamed into place, so a crash
// never leaves a partial backup under a valid name. Latest skips
// corrupted files and falls back to older ones.
//
// With a passphrase the data block is sealed with AES-GCM or
// ChaCha20-Poly1305 under an Argon2id key. The salt and cipher name are
// stored in the header, which is authenticated as additional data.
package backup
