package model

import "time"

// Certificate is proof of course completion. At most one per (user, course),
// enforced by the composite unique index; immutable once issued.
type Certificate struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CertificateNumber string    `json:"certificate_number" gorm:"not null;uniqueIndex"`
	IssuedAt          time.Time `json:"issued_at" gorm:"autoCreateTime"`
}
