// Package titles is the single owner of the calendar title convention.
//
// The external calendar has no structured fields: the free-text title is the
// schema. Service type and visit type are classified by substring matching
// against the Japanese service names, and pickup visits are marked with the
// 引取 token. Every pattern lives here so the convention can later be swapped
// for structured metadata without touching the availability or restriction
// logic.
//
// Contract version 1:
//
//	title   := 【未確認】["(引取) "] name " - " service
//	pickup  := title contains 引取, starts with 引取, ends with (引取),
//	           or starts with (引取)
//	service := title contains the catalog display name
//	duration is declared in the description as 作業時間: N分
package titles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/konanauto/garage-booking/internal/schedule"
)

// UnconfirmedPrefix marks entries created by the booking site that staff
// have not yet confirmed.
const UnconfirmedPrefix = "【未確認】"

const pickupToken = "引取"

// IsPickup reports whether a calendar title marks a pickup visit. The four
// historical patterns are kept verbatim even though the contains check
// subsumes the others: the contract is the pattern list, not its current
// minimal form.
func IsPickup(title string) bool {
	return strings.Contains(title, pickupToken) ||
		strings.HasPrefix(title, pickupToken) ||
		strings.HasSuffix(title, "("+pickupToken+")") ||
		strings.HasPrefix(title, "("+pickupToken+")")
}

// MentionsService reports whether a title is classified as the given
// service. Classification is substring containment on the display name.
func MentionsService(title, service string) bool {
	return strings.Contains(title, service)
}

// CountService counts the events classified as the given service.
func CountService(events []schedule.Event, service string) int {
	n := 0
	for _, e := range events {
		if MentionsService(e.Title, service) {
			n++
		}
	}
	return n
}

// CountPickups counts the events marked as pickup visits.
func CountPickups(events []schedule.Event) int {
	n := 0
	for _, e := range events {
		if IsPickup(e.Title) {
			n++
		}
	}
	return n
}

// Compose renders the calendar title for a new booking.
func Compose(customerName, service string, pickup bool) string {
	mark := ""
	if pickup {
		mark = "(" + pickupToken + ") "
	}
	return fmt.Sprintf("%s%s%s - %s", UnconfirmedPrefix, mark, customerName, service)
}

// Details carries the customer and booking fields rendered into the
// calendar entry's description block.
type Details struct {
	CompanyName        string
	FullName           string
	Phone              string
	Address            string
	CarModel           string
	YearEra            string // 令和 or 平成
	YearNumber         string
	RegistrationNumber string
	Service            string
	DurationMin        int
	Notes              string
	Concerns           string
}

// DisplayName is the name rendered into the calendar title: the company
// name for corporate and lease bookings, the customer's own name otherwise.
func (d Details) DisplayName() string {
	if d.CompanyName != "" {
		return d.CompanyName
	}
	return d.FullName
}

// Description renders the structured Japanese description block. Empty
// fields are omitted line by line.
func Description(d Details) string {
	var b strings.Builder
	b.WriteString("【お客様情報】\n")
	if d.CompanyName != "" {
		fmt.Fprintf(&b, "会社名: %s\n", d.CompanyName)
	} else if d.FullName != "" {
		fmt.Fprintf(&b, "お名前: %s\n", d.FullName)
	}
	if d.Phone != "" {
		fmt.Fprintf(&b, "電話番号: %s\n", d.Phone)
	}
	if d.Address != "" {
		fmt.Fprintf(&b, "住所: %s\n", d.Address)
	}
	if d.CarModel != "" {
		fmt.Fprintf(&b, "車種: %s\n", d.CarModel)
	}
	if d.YearNumber != "" {
		fmt.Fprintf(&b, "年式: %s%s年\n", d.YearEra, d.YearNumber)
	}
	if d.RegistrationNumber != "" {
		fmt.Fprintf(&b, "登録番号: %s\n", d.RegistrationNumber)
	}
	b.WriteString("\n【予約内容】\n")
	fmt.Fprintf(&b, "サービス: %s\n", d.Service)
	fmt.Fprintf(&b, "作業時間: %d分\n", d.DurationMin)
	if d.Notes != "" {
		fmt.Fprintf(&b, "備考: %s\n", d.Notes)
	}
	if d.Concerns != "" {
		fmt.Fprintf(&b, "気になる点: %s\n", d.Concerns)
	}
	return strings.TrimRight(b.String(), "\n")
}

var workMinutesRe = regexp.MustCompile(`作業時間: (\d+)分`)

// WorkMinutes extracts the declared duration from a description, 0 when
// absent.
func WorkMinutes(description string) int {
	m := workMinutesRe.FindStringSubmatch(description)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
