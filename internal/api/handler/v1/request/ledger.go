package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// ledgerIDPattern matches shard.realm.num ids with an optional checksum
// suffix, and refuses the reserved 0.0.0.
const ledgerIDPattern = `^(?!0\.0\.0(?:-|$))(0|[1-9]\d{0,18})\.(0|[1-9]\d{0,18})\.(0|[1-9]\d{0,18})(?:-[a-z]{5})?$`

var (
	ledgerIDExp = regexp2.MustCompile(ledgerIDPattern, regexp2.None)

	errInvalidLedgerID = errors.New("must be a ledger id such as 0.0.1234")
)

// IsLedgerID validates string values as ledger account or token ids.
var IsLedgerID = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	matched, err := ledgerIDExp.MatchString(s)
	if err != nil || !matched {
		return errInvalidLedgerID
	}
	return nil
})
