package query

import (
	"context"
	"errors"
	"fmt"

	"signalhub/internal/dao"
	"signalhub/internal/model/entity"

	"gorm.io/gorm"
)

type apiKeyDao struct {
	db *gorm.DB
}

func NewApiKeyDao(db *gorm.DB) dao.ApiKeyDao {
	return &apiKeyDao{
		db: db,
	}
}

// ApiKeyGetBySecret 按token查找激活状态的凭证
// 未找到和已停用都返回 nil, nil，由上层统一映射为INVALID_API_KEY
func (r *apiKeyDao) ApiKeyGetBySecret(ctx context.Context, secret string) (*entity.ApiKey, error) {
	var key entity.ApiKey
	result := r.db.WithContext(ctx).
		Where("secret = ? AND active = ?", secret, true).
		First(&key)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to look up api key: %w", result.Error)
	}

	return &key, nil
}
