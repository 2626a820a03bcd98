package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LS2603/e-commerce-api/apperrors"
	"github.com/LS2603/e-commerce-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	Postcode     string `json:"postcode"`
	PasswordHash string `json:"password_hash"`
}

type UpdateUserInput struct {
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 string  `json:"address_line2"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
	PasswordHash *string `json:"password_hash"` // omitted => existing hash retained
}

// GET /users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("id").Find(&users).Error; err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GET /users/:id
func GetUserByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("User"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /users
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Email == "" || input.PasswordHash == "" {
			apperrors.Render(c, apperrors.Validation("email and password required"))
			return
		}

		user := models.User{
			Email:        input.Email,
			Phone:        input.Phone,
			AddressLine1: input.AddressLine1,
			AddressLine2: input.AddressLine2,
			City:         input.City,
			Postcode:     input.Postcode,
			PasswordHash: input.PasswordHash,
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperrors.Render(c, apperrors.Conflict("Email already in use"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// PUT /users/:id
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Email == "" {
			apperrors.Render(c, apperrors.Validation("email is required"))
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("User"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}

		user.Email = input.Email
		user.Phone = input.Phone
		user.AddressLine1 = input.AddressLine1
		user.AddressLine2 = input.AddressLine2
		user.City = input.City
		user.Postcode = input.Postcode
		if input.PasswordHash != nil {
			user.PasswordHash = *input.PasswordHash
		}

		if err := db.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperrors.Render(c, apperrors.Conflict("Email already in use"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DELETE /users/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Render(c, apperrors.NotFound("User"))
			} else {
				apperrors.Render(c, err)
			}
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			apperrors.Render(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
	}
}
