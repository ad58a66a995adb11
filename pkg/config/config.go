// Package config loads the bot configuration and the bilingual shop
// texts. Missing files fall back to defaults; the bot token always comes
// from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const tokenEnv = "TELEGRAM_TOKEN"

type Config struct {
	TelegramToken string   `yaml:"-"`
	Timezone      string   `yaml:"timezone"`
	MenuPath      string   `yaml:"menu_path"`
	AdminIDs      []int64  `yaml:"admin_ids"`
	SessionTTL    duration `yaml:"session_ttl"`
	Database      Database `yaml:"database"`
	Messages      Messages `yaml:"messages"`
}

type Database struct {
	Driver      string `yaml:"driver"` // "sqlite" | "postgres"
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresURL string `yaml:"postgres_url"`
}

// duration lets YAML carry values like "12h".
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("can't parse duration %q: %w", value.Value, err)
	}
	*d = duration(parsed)
	return nil
}

func (d duration) Std() time.Duration { return time.Duration(d) }

// Messages holds every user-facing text. The shop runs bilingual
// Thai/English, so defaults carry both lines.
type Messages struct {
	Responses Responses `yaml:"responses"`
	Buttons   Buttons   `yaml:"buttons"`
}

type Responses struct {
	Start          string `yaml:"start"`
	UnknownCommand string `yaml:"unknown_command"`
	AdminOnly      string `yaml:"admin_only"`
	AdminMenu      string `yaml:"admin_menu"`
	Cancelled      string `yaml:"cancelled"`
	StepCategory   string `yaml:"step_category"`
	StepItem       string `yaml:"step_item"`    // args: category
	StepVariant    string `yaml:"step_variant"` // args: category, item
	StepPayment    string `yaml:"step_payment"` // args: category, item, variant, price
	SaleSaved      string `yaml:"sale_saved"`   // args: item, variant, price, payment
	SaveFailed     string `yaml:"save_failed"`
	ReportFailed   string `yaml:"report_failed"`
	StalePrompt    string `yaml:"stale_prompt"`
	NoSales        string `yaml:"no_sales"`
	NoData         string `yaml:"no_data"` // sentinel date bound for an empty ledger
}

type Buttons struct {
	NewSale       string `yaml:"new_sale"`
	TodayReport   string `yaml:"today_report"`
	WeekReport    string `yaml:"week_report"`
	MonthReport   string `yaml:"month_report"`
	AllTimeReport string `yaml:"alltime_report"`
	Admin         string `yaml:"admin"`
	Details       string `yaml:"details"`
	Back          string `yaml:"back"`
	Cancel        string `yaml:"cancel"`
	Cash          string `yaml:"cash"`
	QR            string `yaml:"qr"`
}

// Init loads path (optional) over the defaults and picks up the bot
// token from the environment.
func Init(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("can't read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("can't parse config: %w", err)
			}
		}
	}

	cfg.TelegramToken = os.Getenv(tokenEnv)
	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN environment variable not set")
	}
	return cfg, nil
}

// Location resolves the configured shop time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("can't load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Default returns the configuration the shop actually runs with; a config
// file only needs to override what differs.
func Default() *Config {
	return &Config{
		Timezone:   "Asia/Bangkok",
		MenuPath:   "configs/menu.yaml",
		SessionTTL: duration(12 * time.Hour),
		Database: Database{
			Driver:     "sqlite",
			SQLitePath: "sales.db",
		},
		Messages: DefaultMessages(),
	}
}

// DefaultMessages returns the shop's bilingual texts.
func DefaultMessages() Messages {
	return Messages{
		Responses: Responses{
			Start: "🧋 ยินดีต้อนรับสู่ร้าน Cameron Pattaya!\n🧋 Welcome to Cameron Pattaya!\n\n" +
				"ฉันจะช่วยคุณจัดการยอดขาย\nI'll help you manage your sales.\n\n" +
				"เลือกตัวเลือกด้านล่าง:\nChoose an option below:",
			UnknownCommand: "ไม่เข้าใจคำสั่ง ลองพิมพ์ /start\nUnknown command, try /start",
			AdminOnly:      "คำสั่งนี้สำหรับแอดมินเท่านั้น / This command is for admins only",
			AdminMenu:      "👤 เมนูแอดมิน / Admin Menu\n\nเลือกประเภทรายงาน:\nChoose report type:",
			Cancelled:      "❌ ยกเลิกแล้ว เลือกตัวเลือก:\n❌ Cancelled. Choose an option:",
			StepCategory:   "🆕 ขายใหม่ / New Sale\n\nขั้นที่ 1: เลือกหมวดหมู่\nStep 1: Choose category:",
			StepItem: "🆕 ขายใหม่ / New Sale\n\nหมวดหมู่ / Category: %s\n\n" +
				"ขั้นที่ 2: เลือกเครื่องดื่ม\nStep 2: Choose drink:",
			StepVariant: "🆕 ขายใหม่ / New Sale\n\nหมวดหมู่ / Category: %s\nเครื่องดื่ม / Drink: %s\n\n" +
				"ขั้นที่ 3: เลือกขนาด\nStep 3: Choose size:",
			StepPayment: "🆕 ขายใหม่ / New Sale\n\nหมวดหมู่ / Category: %s\nเครื่องดื่ม / Drink: %s\n" +
				"ขนาด / Size: %s\nราคา / Price: %s บาท / THB\n\n" +
				"ขั้นที่ 4: เลือกวิธีชำระเงิน\nStep 4: Choose payment type:",
			SaleSaved: "✅ บันทึกการขายแล้ว!\n✅ Sale saved!\n\nเครื่องดื่ม / Drink: %s\n" +
				"ขนาด / Size: %s\nยอดเงิน / Amount: %s บาท / THB\nชำระโดย / Payment: %s",
			SaveFailed:   "เกิดข้อผิดพลาดในการบันทึก กรุณาลองใหม่\nCouldn't save the sale, please try again",
			ReportFailed: "เกิดข้อผิดพลาดในการสร้างรายงาน กรุณาลองใหม่\nCouldn't build the report, please try again",
			StalePrompt:  "เมนูนี้หมดอายุแล้ว เริ่มขั้นตอนนี้ใหม่:\nThat menu expired, here is a fresh one:",
			NoSales:      "ไม่มีข้อมูลการขาย / No sales data",
			NoData:       "N/A",
		},
		Buttons: Buttons{
			NewSale:       "🆕 ขายใหม่ / New sale",
			TodayReport:   "📊 รายงานวันนี้ / Today report",
			WeekReport:    "📆 รายงานรายสัปดาห์ / Weekly Report",
			MonthReport:   "📅 รายงานประจำเดือน / Monthly Report",
			AllTimeReport: "🗂 รายงานทั้งหมด / All-time Report",
			Admin:         "👤 แอดมิน / Admin",
			Details:       "📋 รายละเอียด / Details",
			Back:          "🔙 กลับ / Back",
			Cancel:        "❌ ยกเลิก / Cancel",
			Cash:          "💵 เงินสด / Cash",
			QR:            "📱 คิวอาร์ / QR",
		},
	}
}
