// internal/domain/location/uzbekistan.go
package location

// Uzbekistan lists the regions and districts offered by the location picker.
var Uzbekistan = NewCatalog([]Region{
	{
		Name:      "Toshkent shahri",
		Districts: []string{
			"Bektemir", "Chilonzor", "Mirobod", "Mirzo Ulug'bek", "Sergeli", "Shayxontohur", "Olmazor", "Uchtepa",
			"Yakkasaroy", "Yunusobod", "Yashnobod",
		},
	},
	{
		Name:      "Toshkent viloyati",
		Districts: []string{
			"Oqqo'rg'on", "Angren", "Bekobod", "Bo'ka", "Bo'stonliq", "Chirchiq", "Chinoz", "Qibray", "Olmaliq",
			"Ohangaron", "Parkent", "Piskent", "Quyi Chirchiq", "Yangiyo'l", "Yuqori Chirchiq", "Zangiota",
			"Nurafshon",
		},
	},
	{
		Name:      "Andijon viloyati",
		Districts: []string{
			"Andijon shahri", "Asaka", "Baliqchi", "Bo'z", "Buloqboshi", "Izboskan", "Jalolquduq", "Xo'jaobod",
			"Qo'rg'ontepa", "Marhamat", "Oltinko'l", "Paxtaobod", "Shahrixon", "Ulug'nor", "Xonobod",
		},
	},
	{
		Name:      "Buxoro viloyati",
		Districts: []string{
			"Buxoro shahri", "Olot", "Buxoro", "Vobkent", "G'ijduvon", "Jondor", "Kogon", "Qorako'l", "Qorovulbozor",
			"Peshku", "Romitan", "Shofirkon",
		},
	},
	{
		Name:      "Farg'ona viloyati",
		Districts: []string{
			"Farg'ona shahri", "Oltiariq", "Bag'dod", "Beshariq", "Buvayda", "Dang'ara", "Farg'ona", "Furqat",
			"Qo'shtepa", "Quva", "Rishton", "So'x", "Toshloq", "Uchko'prik", "O'zbekiston", "Marg'ilon", "Quvasoy",
			"Qo'qon",
		},
	},
	{
		Name:      "Jizzax viloyati",
		Districts: []string{
			"Jizzax shahri", "Arnasoy", "Baxmal", "Do'stlik", "Forish", "G'allaorol", "Jizzax", "Mirzacho'l",
			"Paxtakor", "Yangiobod", "Zafarobod", "Zomin",
		},
	},
	{
		Name:      "Xorazm viloyati",
		Districts: []string{
			"Urganch shahri", "Bog'ot", "Gurlan", "Qo'shko'pir", "Urganch", "Xazorasp", "Xiva", "Yangiariq",
			"Yangibozor", "Tuproqqal'a", "Shovot",
		},
	},
	{
		Name:      "Namangan viloyati",
		Districts: []string{
			"Namangan shahri", "Chortoq", "Chust", "Kosonsoy", "Mingbuloq", "Namangan", "Norin", "Pop",
			"To'raqo'rg'on", "Uchqo'rg'on", "Uychi", "Yangiqo'rg'on",
		},
	},
	{
		Name:      "Navoiy viloyati",
		Districts: []string{
			"Navoiy shahri", "Karmana", "Konimex", "Navbahor", "Navoiy", "Nurota", "Tomdi", "Uchquduq", "Xatirchi",
			"Zarafshon",
		},
	},
	{
		Name:      "Qashqadaryo viloyati",
		Districts: []string{
			"Qarshi shahri", "Chiroqchi", "Dehqonobod", "G'uzor", "Kasbi", "Kitob", "Koson", "Mirishkor", "Muborak",
			"Nishon", "Qamashi", "Qarshi", "Shahrisabz", "Yakkabog'",
		},
	},
	{
		Name:      "Qoraqalpog'iston",
		Districts: []string{
			"Nukus shahri", "Amudaryo", "Beruniy", "Kegeyli", "Qanliko'l", "Qorao'zak", "Qo'ng'irot", "Mo'ynoq",
			"Nukus", "Taxiatosh", "To'rtko'l", "Xo'jayli", "Shumanay", "Ellikqal'a",
		},
	},
	{
		Name:      "Samarqand viloyati",
		Districts: []string{
			"Samarqand shahri", "Bulung'ur", "Ishtixon", "Jomboy", "Kattaqo'rg'on shahri", "Kattaqo'rg'on", "Narpay",
			"Nurobod", "Oqdaryo", "Pastdarg'om", "Paxtachi", "Payariq", "Qo'shrabot", "Samarqand", "Toyloq", "Urgut",
		},
	},
	{
		Name:      "Sirdaryo viloyati",
		Districts: []string{
			"Guliston shahri", "Boyovut", "Guliston", "Mirzaobod", "Oqoltin", "Sardoba", "Sayxunobod", "Sirdaryo",
			"Xavos", "Yangiyer",
		},
	},
	{
		Name:      "Surxondaryo viloyati",
		Districts: []string{
			"Termiz shahri", "Angor", "Bandixon", "Boysun", "Denov", "Jarqo'rg'on", "Qiziriq", "Qumqo'rg'on",
			"Muzrabot", "Oltinsoy", "Sariosiyo", "Sherobod", "Sho'rchi", "Termiz", "Uzun",
		},
	},
})
