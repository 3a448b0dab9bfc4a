package faq

// Static FAQ corpus per product. Loaded once, never mutated at runtime.

var silverstreamFAQs = []Question{
	{
		ID:       "faq_ss_manfaat",
		Question: "Apa manfaat utama?",
		Answer: "Menghancurkan biofilm untuk mendukung pembersihan luka yang efektif.\n" +
			"Mempercepat penyembuhan dan mendukung pencegahan infeksi.\n" +
			"Lembut pada luka dengan pH alami.\n" +
			"Tidak beracun dan tidak menyebabkan iritasi.\n" +
			"Tidak mengandung Steroid atau Antibiotik.\n" +
			"Tidak mengandung Alkohol atau Iodin.\n" +
			"Tidak merusak jaringan sehat.\n" +
			"Ramah lingkungan - tidak memerlukan pembuangan khusus.",
	},
	{
		ID:       "faq_ss_komposisi",
		Question: "Apa kandungannya?",
		Answer: "-Water for Injection (air steril)\n-Gliserol\n-Tween-20 (surfaktan)\n" +
			"-TRIS Buffer (penyeimbang pH)\n-Menthol\n-Silver Nitrate 0,01% → menghasilkan ion perak",
	},
	{
		ID:       "faq_ss_penyimpanan",
		Question: "Cara simpan yang benar?",
		Answer: "-Simpan pada suhu ruangan 10°C - 30°C\n-Letakkan di tempat kering, jauh dari kelembaban\n" +
			"-Hindarkan dari sinar matahari langsung\n-Tutup rapat setelah digunakan\n" +
			"-Jika botol sudah kontak langsung dengan luka, buang setelah pemakaian",
	},
	{
		ID:       "faq_ss_durasi_efek",
		Question: "Berapa lama efeknya?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_ss_diabetes",
		Question: "Aman utk luka diabetes?",
		Answer: "SilverStream umumnya aman digunakan pada penderita diabetes karena diformulasikan " +
			"untuk luka kronis termasuk luka diabetes\n" +
			" -Mengandung ion perak yang membantu kontrol infeksi & mendukung penyembuhan\n" +
			"Namun, penggunaan untuk luka diabetes sebaiknya didampingi tenaga medis karena " +
			"luka diabetes berisiko infeksi & sirkulasi buruk\n" +
			" -Cocok sebagai bagian dari perawatan luka, bukan satu-satunya terapi\n\n" +
			"Ringkasnya:\n Aman, tapi harus dalam pengawasan medis bila luka diabetes sedang atau berat",
	},
	{
		ID:       "faq_ss_anak",
		Question: "Bisa untuk anak-anak?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_ss_kemasan",
		Question: "Ukuran kemasan apa saja?",
		Answer:   "Tersedia dalam ukuran 100 mL, 250 mL, 500 mL",
	},
	{
		ID:       "faq_ss_resep",
		Question: "Perlu resep dokter?",
		Answer:   "Tidak perlu resep dokter",
	},
	{
		ID:       "faq_ss_expired",
		Question: "Berapa lama expired?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_ss_efek_samping",
		Question: "Ada efek samping?",
		Answer: "Efek samping SilverStream:\n-Iritasi ringan pada kulit atau rasa perih sesaat saat aplikasi\n" +
			"-Sensasi dingin karena kandungan menthol (umumnya bukan masalah)\n" +
			"-Pada sebagian kecil orang bisa muncul reaksi alergi seperti merah, gatal, atau bengkak\n" +
			"-Jika digunakan tidak higienis, risiko kontaminasi botol bisa menyebabkan infeksi\n\n" +
			"Catatan:\nJika luka memburuk, muncul nanah berlebih, atau nyeri meningkat, " +
			"hentikan penggunaan & konsultasikan tenaga medis",
	},
	{
		ID:       "faq_ss_interaksi_obat",
		Question: "Bisa dengan obat lain?",
		Answer:   "Oops belum ada info yang valid!",
	},
}

var stimelFAQs = []Question{
	{
		ID:       "faq_st_manfaat",
		Question: "Apa manfaat terapi?",
		Answer:   "Meningkatkan kekuatan otot, memperbaiki fungsi motorik, dll.\n\nUpdate dengan info yang valid!",
	},
	{
		ID:       "faq_st_durasi_sesi",
		Question: "Berapa lama per sesi?",
		Answer:   "30-45 menit per sesi.\n\nUpdate dengan info yang valid!",
	},
	{
		ID:       "faq_st_kontraindikasi",
		Question: "Ada kontraindikasi?",
		Answer:   "Pacemaker, kehamilan, dll.\n\nUpdate dengan info yang valid!",
	},
	{
		ID:       "faq_st_harga",
		Question: "Berapa biaya terapi?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_sakit",
		Question: "Apakah terasa sakit?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_frekuensi",
		Question: "Berapa kali seminggu?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_hasil",
		Question: "Kapan hasil terlihat?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_lansia",
		Question: "Bisa untuk lansia?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_perbedaan",
		Question: "Beda NMES & biofeedback?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_tenaga_medis",
		Question: "Perlu tenaga medis?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_rawat_jalan",
		Question: "Bisa rawat jalan?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_st_asuransi",
		Question: "Cover asuransi?",
		Answer:   "Oops belum ada info yang valid!",
	},
}

var akusehatFAQs = []Question{
	{
		ID:       "faq_as_akurasi",
		Question: "Seberapa akurat AI?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_as_privasi",
		Question: "Apakah data aman?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_as_offline",
		Question: "Bisa offline?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_as_durasi_scan",
		Question: "Berapa lama scan?",
		Answer:   "3-5 menit",
	},
	{
		ID:       "faq_as_umur",
		Question: "Batasan umur?",
		Answer:   "Tidak ada batasan umur untuk menggunakan AkuSehat",
	},
	{
		ID:       "faq_as_device",
		Question: "Device apa saja?",
		Answer:   "Saat ini kami masih tersedia untuk Android saja",
	},
	{
		ID:       "faq_as_dokter",
		Question: "Bisa kirim ke dokter?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_as_biaya",
		Question: "Berapa biayanya?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_as_validasi",
		Question: "Tervalidasi medis?",
		Answer:   "Oops belum ada info yang valid!",
	},
	{
		ID:       "faq_as_riwayat",
		Question: "Bisa simpan riwayat?",
		Answer:   "Oops belum ada info yang valid!",
	},
}
