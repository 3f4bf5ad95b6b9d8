package repository

import (
	"github.com/Min-owo17/Mysic/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByID 按 ID 查找未删除用户
func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 id=%d", id)
	}
	return &user, nil
}

// FindDetail 查询用户详情
func (r *userRepository) FindDetail(id uint) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Profile").
		Preload("Profile.Instruments", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, id ASC")
		}).
		Preload("Profile.Instruments.Instrument").
		Preload("Profile.UserTypes").
		Preload("Profile.UserTypes.UserType").
		Preload("SelectedAchievement").
		First(&user, "user_id = ?", id).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询用户详情 id=%d", id)
	}
	return &user, nil
}

// FindByEmail 按邮箱查找未删除用户
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindByIDs 批量查询用户
func (r *userRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

func (r *userRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	return r.taken("email", email, excludeID)
}

func (r *userRepository) NicknameTaken(nickname string, excludeID uint) (bool, error) {
	return r.taken("nickname", nickname, excludeID)
}

func (r *userRepository) taken(column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("user_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "检查 %s 是否占用", column)
	}
	return count > 0, nil
}

// Create 创建用户
func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// Save 保存用户全部字段
func (r *userRepository) Save(user *model.User) error {
	if err := r.db.Omit("Profile", "SelectedAchievement").Save(user).Error; err != nil {
		return wrapDBErrorf(err, "保存用户 id=%d", user.ID)
	}
	return nil
}

// Updates 更新指定字段
func (r *userRepository) Updates(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.User{}).Where("user_id = ?", id).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新用户 id=%d", id)
	}
	return nil
}

// SoftDelete 停用并软删除用户
func (r *userRepository) SoftDelete(id uint) error {
	if err := r.db.Model(&model.User{}).Where("user_id = ?", id).Update("is_active", false).Error; err != nil {
		return wrapDBErrorf(err, "停用用户 id=%d", id)
	}
	if err := r.db.Delete(&model.User{}, "user_id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "删除用户 id=%d", id)
	}
	return nil
}

// Search 按昵称或唯一码模糊搜索，排除自己与停用用户
func (r *userRepository) Search(query string, excludeID uint, limit int) ([]model.User, error) {
	var users []model.User
	like := "%" + query + "%"
	err := r.db.
		Where("user_id <> ? AND is_active = ?", excludeID, true).
		Where("nickname LIKE ? OR unique_code LIKE ?", like, like).
		Preload("SelectedAchievement").
		Order("last_login_at DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, wrapDBError(err, "搜索用户")
	}
	return users, nil
}

// List 管理员用户列表，按创建时间倒序
func (r *userRepository) List(filter UserFilter, page, pageSize int) ([]model.User, int64, error) {
	var (
		users []model.User
		total int64
	)
	q := r.db.Model(&model.User{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("nickname LIKE ? OR email LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计用户数量")
	}
	if err := q.Order("created_at DESC").Scopes(paginate(page, pageSize)).Find(&users).Error; err != nil {
		return nil, 0, wrapDBError(err, "查询用户列表")
	}
	return users, total, nil
}
