package storage

import "errors"

// ErrInvalidUploadPath is returned when an (operation, field) pair has no
// destination bucket. Unmatched combinations fail closed.
var ErrInvalidUploadPath = errors.New("invalid upload path")

// UploadOp identifies the operation an upload arrived with. The destination
// bucket depends on the operation and, for team uploads, the form field name.
type UploadOp int

const (
	OpTournamentCreate UploadOp = iota
	OpTournamentUpdate
	OpTeamCreate
	OpTeamUpdate
	OpPlayerCreate
	OpNewsCreate
	OpNewsUpdate
)

// Bucket is a storage subdirectory grouping uploads by category. Values are
// the on-disk folder names under the upload root (kept verbatim from the
// original deployment, including the capitalized News folder, so existing
// stored paths keep resolving).
type Bucket string

const (
	BucketTournamentLogo Bucket = "tournament_logo"
	BucketTeamLogo       Bucket = "team_logo"
	BucketReceipt        Bucket = "receipts"
	BucketTeamDocument   Bucket = "team_document"
	BucketNews           Bucket = "News"
)

// Team upload field names are part of the multipart contract with the
// frontend.
const (
	FieldTeamLogo = "teamLogo"
	FieldReceipt  = "receipt"
)

// ClassifyUpload picks the destination bucket for an incoming file.
func ClassifyUpload(op UploadOp, field string) (Bucket, error) {
	switch op {
	case OpTournamentCreate, OpTournamentUpdate:
		return BucketTournamentLogo, nil
	case OpTeamCreate, OpTeamUpdate:
		switch field {
		case FieldTeamLogo:
			return BucketTeamLogo, nil
		case FieldReceipt:
			return BucketReceipt, nil
		}
	case OpPlayerCreate:
		return BucketTeamDocument, nil
	case OpNewsCreate, OpNewsUpdate:
		return BucketNews, nil
	}
	return "", ErrInvalidUploadPath
}
