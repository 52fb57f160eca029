package bank

import "slices"

// Vocabulary returns a copy of the built-in vocabulary list.
func Vocabulary() []Vocab {
	return slices.Clone(vocabulary)
}

// Particles returns a copy of the built-in particle reference.
func Particles() []Particle {
	return slices.Clone(particles)
}

// Questions returns a deep copy of the built-in question bank.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}

// TrueFalseChoices are the two options every true/false question offers.
var TrueFalseChoices = []string{"Benar", "Salah"}

var vocabulary = []Vocab{
	{ID: "v001", JP: "学校", Kana: "がっこう", Romaji: "gakkou", Meaning: "sekolah", Kind: KindNoun, Themes: []string{"Sekolah"}},
	{ID: "v002", JP: "先生", Kana: "せんせい", Romaji: "sensei", Meaning: "guru", Kind: KindNoun, Themes: []string{"Sekolah"}},
	{ID: "v003", JP: "学生", Kana: "がくせい", Romaji: "gakusei", Meaning: "pelajar", Kind: KindNoun, Themes: []string{"Sekolah"}},
	{ID: "v004", JP: "本", Kana: "ほん", Romaji: "hon", Meaning: "buku", Kind: KindNoun, Themes: []string{"Sekolah", "Umum"}},
	{ID: "v005", JP: "勉強する", Kana: "べんきょうする", Romaji: "benkyou suru", Meaning: "belajar", Kind: KindVerb, Themes: []string{"Sekolah"}},
	{ID: "v006", JP: "母", Kana: "はは", Romaji: "haha", Meaning: "ibu (sendiri)", Kind: KindNoun, Themes: []string{"Keluarga"}},
	{ID: "v007", JP: "父", Kana: "ちち", Romaji: "chichi", Meaning: "ayah (sendiri)", Kind: KindNoun, Themes: []string{"Keluarga"}},
	{ID: "v008", JP: "兄", Kana: "あに", Romaji: "ani", Meaning: "kakak laki-laki", Kind: KindNoun, Themes: []string{"Keluarga"}},
	{ID: "v009", JP: "姉", Kana: "あね", Romaji: "ane", Meaning: "kakak perempuan", Kind: KindNoun, Themes: []string{"Keluarga"}},
	{ID: "v010", JP: "家族", Kana: "かぞく", Romaji: "kazoku", Meaning: "keluarga", Kind: KindNoun, Themes: []string{"Keluarga"}},
	{ID: "v011", JP: "水", Kana: "みず", Romaji: "mizu", Meaning: "air", Kind: KindNoun, Themes: []string{"Makanan/Minuman"}},
	{ID: "v012", JP: "ご飯", Kana: "ごはん", Romaji: "gohan", Meaning: "nasi; makanan", Kind: KindNoun, Themes: []string{"Makanan/Minuman"}},
	{ID: "v013", JP: "食べる", Kana: "たべる", Romaji: "taberu", Meaning: "makan", Kind: KindVerb, Themes: []string{"Makanan/Minuman"}},
	{ID: "v014", JP: "飲む", Kana: "のむ", Romaji: "nomu", Meaning: "minum", Kind: KindVerb, Themes: []string{"Makanan/Minuman"}},
	{ID: "v015", JP: "美味しい", Kana: "おいしい", Romaji: "oishii", Meaning: "enak", Kind: KindAdjective, Themes: []string{"Makanan/Minuman"}},
	{ID: "v016", JP: "今日", Kana: "きょう", Romaji: "kyou", Meaning: "hari ini", Kind: KindNoun, Themes: []string{"Waktu/Hari"}},
	{ID: "v017", JP: "明日", Kana: "あした", Romaji: "ashita", Meaning: "besok", Kind: KindNoun, Themes: []string{"Waktu/Hari"}},
	{ID: "v018", JP: "朝", Kana: "あさ", Romaji: "asa", Meaning: "pagi", Kind: KindNoun, Themes: []string{"Waktu/Hari"}},
	{ID: "v019", JP: "日曜日", Kana: "にちようび", Romaji: "nichiyoubi", Meaning: "hari Minggu", Kind: KindNoun, Themes: []string{"Waktu/Hari"}},
	{ID: "v020", JP: "駅", Kana: "えき", Romaji: "eki", Meaning: "stasiun", Kind: KindNoun, Themes: []string{"Tempat"}},
	{ID: "v021", JP: "図書館", Kana: "としょかん", Romaji: "toshokan", Meaning: "perpustakaan", Kind: KindNoun, Themes: []string{"Tempat", "Sekolah"}},
	{ID: "v022", JP: "家", Kana: "いえ", Romaji: "ie", Meaning: "rumah", Kind: KindNoun, Themes: []string{"Tempat", "Keluarga"}},
	{ID: "v023", JP: "行く", Kana: "いく", Romaji: "iku", Meaning: "pergi", Kind: KindVerb, Themes: []string{"Tempat", "Umum"}},
	{ID: "v024", JP: "サッカー", Kana: "さっかー", Romaji: "sakkaa", Meaning: "sepak bola", Kind: KindNoun, Themes: []string{"Hobi/Olahraga"}},
	{ID: "v025", JP: "泳ぐ", Kana: "およぐ", Romaji: "oyogu", Meaning: "berenang", Kind: KindVerb, Themes: []string{"Hobi/Olahraga"}},
	{ID: "v026", JP: "好き", Kana: "すき", Romaji: "suki", Meaning: "suka", Kind: KindAdjective, Themes: []string{"Hobi/Olahraga", "Umum"}},
	{ID: "v027", JP: "大きい", Kana: "おおきい", Romaji: "ookii", Meaning: "besar", Kind: KindAdjective, Themes: []string{"Umum"}},
	{ID: "v028", JP: "読む", Kana: "よむ", Romaji: "yomu", Meaning: "membaca", Kind: KindVerb, Themes: []string{"Sekolah", "Hobi/Olahraga"}},
}

var particles = []Particle{
	{Kana: "は", Romaji: "wa", Functions: []string{"Penanda topik kalimat"}, Examples: []ParticleExample{
		{JP: "私は学生です。", Kana: "わたしは がくせいです。", Romaji: "watashi wa gakusei desu.", Meaning: "Saya adalah pelajar."},
	}},
	{Kana: "が", Romaji: "ga", Functions: []string{"Penanda subjek", "Objek untuk suki/wakaru"}, Examples: []ParticleExample{
		{JP: "サッカーが好きです。", Kana: "さっかーが すきです。", Romaji: "sakkaa ga suki desu.", Meaning: "Saya suka sepak bola."},
	}},
	{Kana: "を", Romaji: "o", Functions: []string{"Penanda objek langsung"}, Examples: []ParticleExample{
		{JP: "水を飲みます。", Kana: "みずを のみます。", Romaji: "mizu o nomimasu.", Meaning: "Minum air."},
	}},
	{Kana: "に", Romaji: "ni", Functions: []string{"Tujuan arah", "Waktu tertentu", "Keberadaan"}, Examples: []ParticleExample{
		{JP: "駅に行きます。", Kana: "えきに いきます。", Romaji: "eki ni ikimasu.", Meaning: "Pergi ke stasiun."},
		{JP: "七時に起きます。", Kana: "しちじに おきます。", Romaji: "shichiji ni okimasu.", Meaning: "Bangun jam tujuh."},
	}},
	{Kana: "で", Romaji: "de", Functions: []string{"Tempat kegiatan", "Alat atau cara"}, Examples: []ParticleExample{
		{JP: "図書館で勉強します。", Kana: "としょかんで べんきょうします。", Romaji: "toshokan de benkyou shimasu.", Meaning: "Belajar di perpustakaan."},
	}},
	{Kana: "へ", Romaji: "e", Functions: []string{"Arah tujuan"}, Examples: []ParticleExample{
		{JP: "学校へ行きます。", Kana: "がっこうへ いきます。", Romaji: "gakkou e ikimasu.", Meaning: "Pergi ke sekolah."},
	}},
	{Kana: "と", Romaji: "to", Functions: []string{"Dan (daftar lengkap)", "Bersama"}, Examples: []ParticleExample{
		{JP: "父と母", Kana: "ちちと はは", Romaji: "chichi to haha", Meaning: "Ayah dan ibu."},
	}},
	{Kana: "も", Romaji: "mo", Functions: []string{"Juga"}, Examples: []ParticleExample{
		{JP: "私も学生です。", Kana: "わたしも がくせいです。", Romaji: "watashi mo gakusei desu.", Meaning: "Saya juga pelajar."},
	}},
	{Kana: "の", Romaji: "no", Functions: []string{"Kepemilikan", "Penjelas kata benda"}, Examples: []ParticleExample{
		{JP: "私の本", Kana: "わたしの ほん", Romaji: "watashi no hon", Meaning: "Buku saya."},
	}},
	{Kana: "か", Romaji: "ka", Functions: []string{"Penanda kalimat tanya"}, Examples: []ParticleExample{
		{JP: "先生ですか。", Kana: "せんせいですか。", Romaji: "sensei desu ka.", Meaning: "Apakah Anda guru?"},
	}},
}

var questions = []Question{
	// Cloze.
	{
		ID: "cloze-001", Type: TypeCloze,
		Stem:        "まいあさ みずを（　）。",
		Choices:     []string{"のみます", "たべます", "よみます", "いきます"},
		CorrectKeys: []string{"のみます"},
		Explain:     "みず (air) diminum, jadi kata kerjanya のみます.",
		VocabIDs:    []string{"v011", "v014", "v018"},
		Topics:      []string{"Makanan/Minuman"},
	},
	{
		ID: "cloze-002", Type: TypeCloze,
		Stem:        "としょかんで ほんを（　）。",
		Choices:     []string{"よみます", "のみます", "およぎます", "たべます"},
		CorrectKeys: []string{"よみます"},
		Explain:     "ほん (buku) dibaca: よみます.",
		VocabIDs:    []string{"v021", "v004", "v028"},
		Topics:      []string{"Sekolah"},
	},
	{
		ID: "cloze-003", Type: TypeCloze,
		Stem:        "（　）は にちようびです。",
		Choices:     []string{"きょう", "えき", "ほん", "みず"},
		CorrectKeys: []string{"きょう"},
		Explain:     "きょうは にちようびです = Hari ini hari Minggu.",
		VocabIDs:    []string{"v016", "v019"},
		Topics:      []string{"Waktu/Hari"},
	},
	{
		ID: "cloze-004", Type: TypeCloze,
		Stem:        "この ごはんは とても（　）です。",
		Choices:     []string{"おいしい", "がっこう", "たべます", "あした"},
		CorrectKeys: []string{"おいしい"},
		Explain:     "Kata sifat おいしい (enak) menjelaskan ごはん.",
		VocabIDs:    []string{"v012", "v015"},
		Topics:      []string{"Makanan/Minuman"},
	},

	// Particles.
	{
		ID: "particle-001", Type: TypeParticle,
		Stem:        "わたし（　）がくせいです。",
		Choices:     []string{"は", "を", "に", "で"},
		CorrectKeys: []string{"は"},
		Explain:     "は menandai topik kalimat.",
		VocabIDs:    []string{"v003"},
		Topics:      []string{"Sekolah"},
	},
	{
		ID: "particle-002", Type: TypeParticle,
		Stem:        "ごはん（　）たべます。",
		Choices:     []string{"を", "に", "へ", "と"},
		CorrectKeys: []string{"を"},
		Explain:     "を menandai objek langsung dari たべます.",
		VocabIDs:    []string{"v012", "v013"},
		Topics:      []string{"Makanan/Minuman"},
	},
	{
		ID: "particle-003", Type: TypeParticle,
		Stem:        "としょかん（　）べんきょうします。",
		Choices:     []string{"で", "を", "が", "の"},
		CorrectKeys: []string{"で"},
		Explain:     "で menandai tempat berlangsungnya kegiatan.",
		VocabIDs:    []string{"v021", "v005"},
		Topics:      []string{"Sekolah", "Tempat"},
	},
	{
		ID: "particle-004", Type: TypeParticle,
		Stem:        "あした えき（　）いきます。Pilih semua partikel yang tepat.",
		Choices:     []string{"に", "へ", "を", "で"},
		CorrectKeys: []string{"に", "へ"},
		Explain:     "Arah tujuan dengan いきます dapat memakai に atau へ.",
		VocabIDs:    []string{"v017", "v020", "v023"},
		Topics:      []string{"Tempat"},
	},

	// Sentence ordering.
	{
		ID: "ordering-001", Type: TypeOrdering,
		Stem:        "Susun kalimat: Saya pergi ke sekolah.",
		Tokens:      []string{"がっこうへ", "わたしは", "いきます"},
		CorrectKeys: []string{"わたしは", "がっこうへ", "いきます"},
		Explain:     "Pola: topik は + tujuan へ + kata kerja.",
		VocabIDs:    []string{"v001", "v023"},
		Topics:      []string{"Sekolah"},
	},
	{
		ID: "ordering-002", Type: TypeOrdering,
		Stem:        "Susun kalimat: Ibu minum air.",
		Tokens:      []string{"みずを", "のみます", "ははは"},
		CorrectKeys: []string{"ははは", "みずを", "のみます"},
		Explain:     "Topik ははは, objek みずを, lalu kata kerja のみます.",
		VocabIDs:    []string{"v006", "v011", "v014"},
		Topics:      []string{"Keluarga", "Makanan/Minuman"},
	},
	{
		ID: "ordering-003", Type: TypeOrdering,
		Stem:        "Susun kalimat: Kakak perempuan membaca buku di perpustakaan.",
		Tokens:      []string{"としょかんで", "ほんを", "よみます", "あねは"},
		CorrectKeys: []string{"あねは", "としょかんで", "ほんを", "よみます"},
		Explain:     "Topik, tempat で, objek を, kata kerja.",
		VocabIDs:    []string{"v009", "v021", "v004", "v028"},
		Topics:      []string{"Keluarga", "Tempat"},
	},
	{
		ID: "ordering-004", Type: TypeOrdering,
		Stem:        "Susun kalimat: Kakak laki-laki suka sepak bola.",
		Tokens:      []string{"サッカーが", "すきです", "あには"},
		CorrectKeys: []string{"あには", "サッカーが", "すきです"},
		Explain:     "Objek dari すき ditandai dengan が.",
		VocabIDs:    []string{"v008", "v024", "v026"},
		Topics:      []string{"Keluarga", "Hobi/Olahraga"},
	},

	// True / false.
	{
		ID: "tf-001", Type: TypeTrueFalse,
		Stem:        "「せんせい」 artinya guru.",
		Choices:     TrueFalseChoices,
		CorrectKeys: []string{"Benar"},
		Explain:     "せんせい = guru.",
		VocabIDs:    []string{"v002"},
		Topics:      []string{"Sekolah"},
	},
	{
		ID: "tf-002", Type: TypeTrueFalse,
		Stem:        "「あした」 artinya hari ini.",
		Choices:     TrueFalseChoices,
		CorrectKeys: []string{"Salah"},
		Explain:     "あした = besok; hari ini = きょう.",
		VocabIDs:    []string{"v017", "v016"},
		Topics:      []string{"Waktu/Hari"},
	},
	{
		ID: "tf-003", Type: TypeTrueFalse,
		Passage:     "わたしの かぞくは よにんです。ちちと ははと あねと わたしです。",
		Stem:        "Ada kakak laki-laki di keluarga itu.",
		Choices:     TrueFalseChoices,
		CorrectKeys: []string{"Salah"},
		Explain:     "Keluarga itu: ayah, ibu, kakak perempuan (あね), dan saya.",
		VocabIDs:    []string{"v010", "v007", "v006", "v009"},
		Topics:      []string{"Keluarga"},
	},
	{
		ID: "tf-004", Type: TypeTrueFalse,
		Stem:        "「およぐ」 artinya berenang.",
		Choices:     TrueFalseChoices,
		CorrectKeys: []string{"Benar"},
		Explain:     "およぐ = berenang.",
		VocabIDs:    []string{"v025"},
		Topics:      []string{"Hobi/Olahraga"},
	},

	// Multiple choice.
	{
		ID: "mc-001", Type: TypeMultipleChoice,
		Stem:        "Apa arti 「としょかん」?",
		Choices:     []string{"perpustakaan", "stasiun", "sekolah", "rumah"},
		CorrectKeys: []string{"perpustakaan"},
		VocabIDs:    []string{"v021"},
		Topics:      []string{"Tempat"},
	},
	{
		ID: "mc-002", Type: TypeMultipleChoice,
		Stem:        "Bahasa Jepang untuk \"keluarga\" adalah...",
		Choices:     []string{"かぞく", "がっこう", "ごはん", "えき"},
		CorrectKeys: []string{"かぞく"},
		VocabIDs:    []string{"v010"},
		Topics:      []string{"Keluarga"},
	},
	{
		ID: "mc-003", Type: TypeMultipleChoice,
		Passage:     "きょうは にちようびです。あさ、ちちと サッカーを します。",
		Stem:        "Kapan mereka bermain sepak bola?",
		Choices:     []string{"pagi", "malam", "besok", "hari Senin"},
		CorrectKeys: []string{"pagi"},
		Explain:     "あさ = pagi.",
		VocabIDs:    []string{"v016", "v019", "v018", "v024", "v007"},
		Topics:      []string{"Waktu/Hari", "Hobi/Olahraga"},
	},
	{
		ID: "mc-004", Type: TypeMultipleChoice,
		Stem:        "Pilih semua kata kerja.",
		Choices:     []string{"たべる", "のむ", "おおきい", "がっこう"},
		CorrectKeys: []string{"たべる", "のむ"},
		Explain:     "おおきい adalah kata sifat dan がっこう kata benda.",
		VocabIDs:    []string{"v013", "v014", "v027", "v001"},
		Topics:      []string{"Umum"},
	},

	// Kana drills.
	{
		ID: "kana-001", Type: TypeKana,
		KanaQuestion: "さ", RomajiAnswer: "sa", KanaSet: HiraganaBasic,
		Choices:     []string{"sa", "shi", "su", "ki"},
		CorrectKeys: []string{"sa"},
	},
	{
		ID: "kana-002", Type: TypeKana,
		KanaQuestion: "ね", RomajiAnswer: "ne", KanaSet: HiraganaBasic,
		Choices:     []string{"ne", "re", "wa", "nu"},
		CorrectKeys: []string{"ne"},
	},
	{
		ID: "kana-003", Type: TypeKana,
		KanaQuestion: "きょ", RomajiAnswer: "kyo", KanaSet: HiraganaAdvanced,
		Choices:     []string{"kyo", "kya", "kyu", "ryo"},
		CorrectKeys: []string{"kyo"},
	},
	{
		ID: "kana-004", Type: TypeKana,
		KanaQuestion: "ア", RomajiAnswer: "a", KanaSet: KatakanaBasic,
		Choices:     []string{"a", "ma", "ku", "n"},
		CorrectKeys: []string{"a"},
	},
	{
		ID: "kana-005", Type: TypeKana,
		KanaQuestion: "ジュ", RomajiAnswer: "ju", KanaSet: KatakanaAdvanced,
		Choices:     []string{"ju", "shu", "zu", "chu"},
		CorrectKeys: []string{"ju"},
	},
}
