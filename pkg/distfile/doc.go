// Package distfile fetches, verifies, and unpacks port source archives.
//
// Fetching and checksumming are delegated to the ports framework: [Make]
// runs "make makesum" in the port directory, which downloads the
// distribution file into DISTDIR and records its checksum in distinfo.
// A failure here means the port skeleton itself is unusable, so the error
// carries the CHECKSUM_FAILED code and aborts the whole run.
//
// [VerifySHA256] compares the downloaded file against the digest the
// registry published, and [Extract] unpacks it natively so the license can
// be detected without relying on the ports framework's extract target.
package distfile
