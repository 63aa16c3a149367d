package lexicon

const defaultSystemPrompt = `Sen MFT Leather'ın satış odaklı müşteri hizmetleri asistanısın. 😊

YANIT STİLİ VE FORMATLAMA:
- Müşterinin SPESIFIK sorusuna odaklan, gereksiz detay verme
- **Başlıkları kalın yaz**, önemli bilgileri **vurgula**
- Markdown formatı kullan: **kalın**, *italik*, başlıklar için ##
- Kısa, net ve satış odaklı yanıtlar ver
- Ürünün değerini ve avantajlarını vurgula
- Satın alma teşvik edici ifadeler kullan

ÜRÜN SORULARI İÇİN:
- **Fiyat soruları**: "Güncel fiyat bilgisi için lütfen web sitemizi ziyaret edin: www.mftleather.com" + ürün avantajlarını vurgula
- **Ürün özellikleri**: Sadece ÖNEMLİ ve ÇARPICI bilgileri ver, tüm detayları değil
- **Renk/model**: Mevcut seçenekleri listele + **en popüler olanını öner**
- Kullanıcı "daha fazla detay" isterse, o zaman ek bilgi ver

POLİTİKA SORULARI İÇİN (SSS, İade, Garanti):
- Verilen policy bilgisini DOĞRUDAN ve NET şekilde aktar
- **Önemli kuralları kalın yaz**
- Müşteriyi rahatlatıcı ton kullan
- Ek sorular için mağaza iletişim bilgilerini öner
- Policy bilgisi yoksa "Detaylı bilgi için mağazamızı arayın" de

SATIŞ KURALLARI:
- SADECE verilen ürün/policy bilgilerini kullan
- Fiyat sorularında web sitesine yönlendir
- Ürün yoksa alternatif öner
- Her yanıtta satın alma teşviki ekle (ürün sorularında)
- Policy sorularında güven verici ol

DİL VE FORMAT:
- Samimi ama profesyonel
- Kısa cümleler kullan
- 1-2 emoji ekle
- Türkçe konuş
- Müşteriyi "siz" diye hitap et
- **Önemli bilgileri kalın yaz**
- Başlıklar için ## kullan

Müşterinin sorusuna DOĞRUDAN cevap ver, sonra uygun teşviki ekle.`

// DefaultFile is the MFT Leather catalog in Turkish.
func DefaultFile() File {
	return File{
		Locale: "tr",
		PolicyKeywords: []string{
			"sss", "iade", "garanti", "değişim", "kargo", "ödeme", "taksit", "nakit", "kredi kartı",
			"üretim", "teslimat", "bakım", "temizlik", "mağaza", "adres", "telefon", "fiyat",
			"kişiselleştirme", "isim", "yazı", "logo", "promosyon", "indirim",
		},
		Aliases: []Mapping{
			{Phrase: "vineda 5696", ID: "vineda_5696"},
			{Phrase: "vineda5696", ID: "vineda_5696"},
		},
		Names: []Mapping{
			{Phrase: "retro", ID: "retro_2660"},
			{Phrase: "vineda", ID: "vineda_5696"},
		},
		Colors: []ColorGroup{
			{Keyword: "siyah", Variants: []string{"Flother Mat Siyah", "Napa Siyah", "Tiguan Siyah", "Flother Siyah"}},
			{Keyword: "pembe", Variants: []string{"Flother Mat Pembe", "Vineda Pembe", "Napa Pembe"}},
			{Keyword: "kahverengi", Variants: []string{"Flother Mat Kahverengi", "Napa Kahverengi", "Tiguan Kahverengi"}},
			{Keyword: "beyaz", Variants: []string{"Flother Mat Beyaz", "Napa Beyaz"}},
			{Keyword: "mavi", Variants: []string{"Flother Mat Mavi", "Napa Mavi"}},
		},
		Policy: PolicyDocument{
			Title:    "SSS ve İade Politikası",
			Brand:    "MFT Leather",
			Category: "policy",
		},
		Prompt: PromptStrings{
			System:        defaultSystemPrompt,
			PolicyHeader:  "Bulunan policy bilgileri:",
			ProductHeader: "Bulunan ürünler (detaylı bilgiler):",
			BrandLabel:    "Marka",
			CategoryLabel: "Kategori",
			ColorsLabel:   "Renkler",
			PriceLabel:    "Fiyat",
			DetailsLabel:  "Detaylar",
			NoColors:      "Renk bilgisi yok",
			NoPrice:       "Fiyat bilgisi için mağazamızı arayın",
			Ellipsis:      "...",
			Apology:       "Üzgünüm, şu anda size yardımcı olamıyorum. Lütfen daha sonra tekrar deneyin. 😔",
		},
	}
}

// Default returns a Lexicon built from DefaultFile.
func Default() *Lexicon {
	return New(DefaultFile())
}
