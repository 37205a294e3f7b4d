// internal/domain/settings.go
package domain

import "github.com/shopspring/decimal"

// Spin quota bounds.
const (
	MaxFreeSpinsPerDay = 2
	MaxBonusSpins      = 5
)

// AdminSettings is process-wide configuration for the coin economy. It is
// loaded once at startup and read-only for the lifetime of a session.
type AdminSettings struct {
	CoinRate      decimal.Decimal // Currency units per coin
	MinRecharge   decimal.Decimal // Minimum withdrawal for the Recharge method
	MinBkashNagad decimal.Decimal // Minimum withdrawal for Bkash and Nagad

	DailyCheckInReward int64
	WatchAdReward      int64
	ClickEarnReward    int64
	WebsiteVisitReward int64
	ReferralReward     int64 // Credited to the applying user
	InviteReward       int64 // Credited to the referrer by the external reconciler

	WebsiteVisitTime int // Dwell seconds for the visit gate
	AdDuration       int // Dwell seconds for ad-backed gates

	SpinRewards []int64 // Fixed spin reward table; values may repeat, zero means "no win"
}

// DefaultAdminSettings returns the stock economy configuration.
func DefaultAdminSettings() AdminSettings {
	return AdminSettings{
		CoinRate:           decimal.NewFromFloat(0.01), // 100 coins = 1 Taka
		MinRecharge:        decimal.NewFromInt(20),
		MinBkashNagad:      decimal.NewFromInt(50),
		DailyCheckInReward: 10,
		WatchAdReward:      5,
		ClickEarnReward:    15,
		WebsiteVisitReward: 20,
		ReferralReward:     50,
		InviteReward:       100,
		WebsiteVisitTime:   15,
		AdDuration:         5,
		SpinRewards:        []int64{5, 10, 15, 20, 50, 0, 10, 5},
	}
}

// MinimumFor returns the minimum withdrawal amount for the given method.
func (s AdminSettings) MinimumFor(method WithdrawMethod) decimal.Decimal {
	if method == WithdrawMethodRecharge {
		return s.MinRecharge
	}
	return s.MinBkashNagad
}
