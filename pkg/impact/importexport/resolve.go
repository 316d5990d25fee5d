package importexport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

func (r PetitionRef) String() string {
	if r.ReceiptNumber != "" {
		return strings.ToUpper(r.ReceiptNumber)
	}
	return r.BeneficiaryEmail + "/" + r.PetitionType
}

func (r CaseGroupRef) String() string {
	return r.BeneficiaryEmail + "/" + r.PathwayType
}

func normEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// resolver turns natural keys into ids inside one row's transaction. The
// first failure sticks; later calls return nil.
type resolver struct {
	tx  *gorm.DB
	err error
}

func (r *resolver) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *resolver) date(field, s string) *time.Time {
	if s == "" || r.err != nil {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		r.fail(fmt.Errorf("%s: expected YYYY-MM-DD, got %q", field, s))
		return nil
	}
	return &t
}

func (r *resolver) id(model interface{}, what, key, where string, args ...interface{}) *uint {
	if r.err != nil || key == "" {
		return nil
	}
	var ids []uint
	if err := r.tx.Model(model).Where(where, args...).Order("id").Limit(1).Pluck("id", &ids).Error; err != nil {
		r.fail(err)
		return nil
	}
	if len(ids) == 0 {
		r.fail(fmt.Errorf("unknown %s %q", what, key))
		return nil
	}
	return &ids[0]
}

func (r *resolver) contract(code string) *uint {
	return r.id(&models.Contract{}, "contract", code, "code = ?", code)
}

func (r *resolver) department(contractCode, code string) *uint {
	if code == "" || r.err != nil {
		return nil
	}
	if contractCode == "" {
		r.fail(fmt.Errorf("department %q needs a contract code", code))
		return nil
	}
	cid := r.contract(contractCode)
	if cid == nil {
		return nil
	}
	return r.id(&models.Department{}, "department", contractCode+"/"+code, "contract_id = ? AND code = ?", *cid, code)
}

func (r *resolver) user(email string) *uint {
	e := normEmail(email)
	return r.id(&models.User{}, "user", e, "email = ?", e)
}

func (r *resolver) lawFirm(name string) *uint {
	return r.id(&models.LawFirm{}, "law firm", name, "name = ?", name)
}

func (r *resolver) visaType(code string) *uint {
	return r.id(&models.VisaType{}, "visa type", code, "code = ?", code)
}

func (r *resolver) beneficiary(email string) *uint {
	e := normEmail(email)
	return r.id(&models.Beneficiary{}, "beneficiary", e, "email = ?", e)
}

// requiredBeneficiary resolves email and fails when it is empty.
func (r *resolver) requiredBeneficiary(email, of string) *uint {
	if email == "" {
		r.fail(fmt.Errorf("%s needs a beneficiary email", of))
		return nil
	}
	return r.beneficiary(email)
}

func (r *resolver) caseGroup(ref CaseGroupRef) *uint {
	if ref.PathwayType == "" || r.err != nil {
		return nil
	}
	b := r.requiredBeneficiary(ref.BeneficiaryEmail, "case group "+ref.String())
	if b == nil {
		return nil
	}
	return r.id(&models.CaseGroup{}, "case group", ref.String(), "beneficiary_id = ? AND pathway_type = ?", *b, ref.PathwayType)
}

// petitionKey is the lookup condition for ref. A receipt number wins; an
// unfiled petition is matched on beneficiary and type.
func (r *resolver) petitionKey(ref PetitionRef) (string, []interface{}) {
	if ref.ReceiptNumber != "" {
		return "receipt_number = ?", []interface{}{strings.ToUpper(ref.ReceiptNumber)}
	}
	if ref.PetitionType == "" {
		r.fail(errors.New("petition reference needs a receipt number or a petition type"))
		return "", nil
	}
	b := r.requiredBeneficiary(ref.BeneficiaryEmail, "petition "+ref.String())
	if b == nil {
		return "", nil
	}
	return "beneficiary_id = ? AND petition_type = ? AND receipt_number IS NULL", []interface{}{*b, ref.PetitionType}
}

func (r *resolver) petition(ref PetitionRef) *uint {
	if r.err != nil {
		return nil
	}
	where, args := r.petitionKey(ref)
	if r.err != nil {
		return nil
	}
	return r.id(&models.Petition{}, "petition", ref.String(), where, args...)
}

// upsert writes rec over the row matched by where, or creates it. Matching
// ignores soft deletion so a deleted row comes back. Columns in omit keep
// their stored value on update. It reports whether the row was created.
func upsert(tx *gorm.DB, rec interface{}, id *uint, omit []string, where string, args ...interface{}) (bool, error) {
	var ids []uint
	if err := tx.Unscoped().Model(rec).Where(where, args...).Order("id").Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return true, tx.Create(rec).Error
	}
	*id = ids[0]
	omit = append([]string{"id", "created_at", clause.Associations}, omit...)
	return false, tx.Unscoped().Model(rec).Select("*").Omit(omit...).Updates(rec).Error
}

func exists(tx *gorm.DB, model interface{}, where string, args ...interface{}) (bool, error) {
	var n int64
	err := tx.Unscoped().Model(model).Where(where, args...).Count(&n).Error
	return n > 0, err
}
