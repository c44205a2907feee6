package repositories

import (
	"device-hub/db"
	"device-hub/entities"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	return translate(r.db.GetDB().Create(user).Error)
}

func (r *userPgRepository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userPgRepository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userPgRepository) List(skip, limit int) ([]entities.User, error) {
	var users []entities.User
	err := r.db.GetDB().Order("id ASC").Offset(skip).Limit(limit).Find(&users).Error
	return users, translate(err)
}

func (r *userPgRepository) Update(user *entities.User) error {
	return translate(r.db.GetDB().Save(user).Error)
}

func (r *userPgRepository) Delete(id uint) error {
	res := r.db.GetDB().Where("id = ?", id).Delete(&entities.User{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
