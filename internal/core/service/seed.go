package service

import (
	"time"

	"github.com/sakan/student-housing/internal/core/domain"
)

// sampleListings is the catalog shown on a fresh store.
func sampleListings(now time.Time) []domain.Listing {
	return []domain.Listing{
		{
			ID:          "1",
			OwnerID:     "owner-1",
			Title:       "شقة مميزة بجوار الجامعة",
			Address:     "شارع التحرير، القاهرة",
			Description: "شقة مفروشة بالكامل، غرفتين نوم، حمام، مطبخ مجهز، قريبة من المترو والجامعة",
			Rent:        2500,
			Images:      []string{"https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg"},
			Approved:    true,
			Type:        domain.ListingPrivate,
			CreatedAt:   now,
		},
		{
			ID:          "2",
			OwnerID:     "owner-2",
			Title:       "سكن مشترك للطلاب",
			Address:     "مدينة نصر، القاهرة",
			Description: "سكن مشترك نظيف وآمن، 4 غرف، 2 حمام، مطبخ مشترك، انترنت سريع",
			Rent:        1200,
			Images:      []string{"https://images.pexels.com/photos/1571468/pexels-photo-1571468.jpeg"},
			Approved:    true,
			Type:        domain.ListingShared,
			CreatedAt:   now,
		},
	}
}
