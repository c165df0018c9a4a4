package persistent

import (
	"errors"

	"postboard/internal/entity"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the entity sentinels. The gorm handle must be
// opened with TranslateError so unique violations surface as ErrDuplicatedKey.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return entity.ErrDuplicate
	default:
		return err
	}
}
