package interest

import (
	"mypage/bizerror"
	"mypage/idgen"
	"mypage/persistence"
	"mypage/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// Catalog is the fixed set of selectable interest categories. Membership of
// a selection is restricted to this list, the empty selection is allowed.
var Catalog = []string{"골프", "테니스", "러닝", "클라이밍", "서핑", "스쿠버다이빙", "요가"}

type InterestRecord struct {
	ID types.ID `json:"id"`

	UserID types.ID `json:"userId" gorm:"unique_index:uni_user_name"`
	Name   string   `json:"name" gorm:"unique_index:uni_user_name"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type InterestToggle struct {
	Name string `json:"name" binding:"required,lte=32"`
}

type SelectionReplacing struct {
	Interests []string `json:"interests"`
}

type ToggleResult struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

var (
	interestIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	QueryInterestsFunc   = QueryInterests
	ToggleInterestFunc   = ToggleInterest
	ReplaceInterestsFunc = ReplaceInterests
)

func IsCatalogName(name string) bool {
	for _, c := range Catalog {
		if c == name {
			return true
		}
	}
	return false
}

// CheckSelection rejects labels outside the catalog. Duplicates are not an
// error, the selection has set semantics.
func CheckSelection(names []string) *bizerror.FieldValidationError {
	for _, name := range names {
		if !IsCatalogName(name) {
			return &bizerror.FieldValidationError{Field: "interests", Message: "unknown interest category: " + name}
		}
	}
	return nil
}

func QueryInterests(sec *session.Context) ([]string, error) {
	return QueryNamesFor(persistence.ActiveDataSourceManager.GormDB(), sec.Identity.ID)
}

func QueryNamesFor(db *gorm.DB, uid types.ID) ([]string, error) {
	records := []InterestRecord{}
	if err := db.Order("ID ASC").Where("user_id = ?", uid).Find(&records).Error; err != nil {
		return nil, err
	}
	names := []string{}
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names, nil
}

// ToggleInterest flips membership of one label: present is removed, absent
// is added. Toggling the same label twice restores the prior selection.
func ToggleInterest(t InterestToggle, sec *session.Context) (*ToggleResult, error) {
	if !IsCatalogName(t.Name) {
		return nil, &bizerror.FieldValidationError{Field: "interests", Message: "unknown interest category: " + t.Name}
	}

	result := ToggleResult{Name: t.Name}
	err := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		existed := InterestRecord{}
		err := tx.Where(&InterestRecord{UserID: sec.Identity.ID, Name: t.Name}).First(&existed).Error
		if err == nil {
			result.Selected = false
			return tx.Delete(InterestRecord{}, "id = ?", existed.ID).Error
		}
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}
		result.Selected = true
		return tx.Create(&InterestRecord{ID: idgen.NextID(interestIdWorker),
			UserID: sec.Identity.ID, Name: t.Name, CreateTime: types.CurrentTimestamp()}).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReplaceInterests swaps the whole selection for the given one.
func ReplaceInterests(r SelectionReplacing, sec *session.Context) error {
	if err := CheckSelection(r.Interests); err != nil {
		return err
	}
	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		return ReplaceInTx(tx, sec.Identity.ID, r.Interests)
	})
}

func ReplaceInTx(tx *gorm.DB, uid types.ID, names []string) error {
	if err := tx.Delete(InterestRecord{}, "user_id = ?", uid).Error; err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		record := InterestRecord{ID: idgen.NextID(interestIdWorker),
			UserID: uid, Name: name, CreateTime: types.CurrentTimestamp()}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}
