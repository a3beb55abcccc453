package view

const StartMessage = `🏠 <b>Realty extractor</b>

/extract &lt;текст&gt; — разобрать объявление
/listing &lt;id&gt; — сохранённое объявление
/recent — последние сохранённые`

const (
	ExtractUsage  = "Использование: /extract <текст объявления>"
	ListingUsage  = "Использование: /listing <id>"
	InvalidID     = "❌ Неверный ID объявления"
	NotFound      = "🔍 Объявление не найдено"
	RecentError   = "❌ Не удалось получить объявления"
	RecentEmpty   = "📭 Сохранённых объявлений пока нет"
	RecentHeader  = "🗂 <b>Последние объявления</b> (стр. %d)\n\n"
	RecentItem    = "%s <code>%s</code> %s\n   %s\n"
	QualityLegend = "\n🟢 ≥ 0.7  🟡 ≥ 0.4  🔴 ниже"
)
