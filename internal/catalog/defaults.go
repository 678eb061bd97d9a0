package catalog

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Идентификаторы процедур по умолчанию
const (
	Haircut       = "haircut"
	SimpleColor   = "simple_color"
	ComplexColor  = "complex_color"
	Botox         = "botox"
	Keratin       = "keratin"
	Laying        = "laying"
	Curls         = "curls"
	Hairstyle     = "hairstyle"
	HairExtFull   = "hair_ext_full"
	HairExtTemple = "hair_ext_temple"
	Highlights    = "highlights"
	HairCheck     = "hair_check"
)

// row длительности для одной густоты: SHORT, MEDIUM, LONG
type row [3]int

func table(thin, medium, thick row) domain.DurationTable {
	t := make(domain.DurationTable, len(domain.HairDensities))
	for i, r := range []row{thin, medium, thick} {
		byLength := make(map[domain.HairLength]int, len(domain.HairLengths))
		for j, length := range domain.HairLengths {
			byLength[length] = r[j]
		}
		t[domain.HairDensities[i]] = byLength
	}
	return t
}

// DefaultProcedures возвращает процедуры салона в порядке реестра
func DefaultProcedures() []domain.Procedure {
	return []domain.Procedure{
		{
			ID: Haircut, Name: "Haircut", NameRu: "Стрижка",
			Complexity: domain.ComplexityEasy, Kind: domain.KindPermanent,
			Durations: table(row{60, 60, 90}, row{60, 60, 90}, row{60, 60, 90}),
		},
		{
			ID: SimpleColor, Name: "Simple Color", NameRu: "Простое окрашивание",
			Complexity: domain.ComplexityEasy, Kind: domain.KindNonPermanent,
			Stage1:      table(row{10, 10, 10}, row{10, 10, 10}, row{20, 20, 20}),
			WaitMinutes: 40,
			Stage3:      domain.UniformTable(10),
		},
		{
			ID: ComplexColor, Name: "Complex Color", NameRu: "Сложное окрашивание",
			Complexity: domain.ComplexityAverage, Kind: domain.KindNonPermanent,
			Stage1:      table(row{60, 90, 90}, row{90, 90, 120}, row{120, 150, 180}),
			WaitMinutes: 60,
			Stage3:      table(row{60, 60, 90}, row{90, 90, 90}, row{90, 90, 90}),
		},
		{
			ID: Botox, Name: "Botox", NameRu: "Ботокс",
			Complexity: domain.ComplexityAverage, Kind: domain.KindNonPermanent,
			Stage1:      table(row{15, 15, 20}, row{20, 20, 30}, row{30, 30, 30}),
			WaitMinutes: 60,
			Stage3:      domain.UniformTable(10),
		},
		{
			ID: Keratin, Name: "Keratin", NameRu: "Кератин",
			Complexity: domain.ComplexityAverage, Kind: domain.KindNonPermanent,
			Stage1:      table(row{15, 15, 20}, row{20, 20, 30}, row{30, 30, 30}),
			WaitMinutes: 60,
			Stage3:      domain.UniformTable(10),
		},
		{
			ID: Laying, Name: "Laying", NameRu: "Укладка",
			Complexity: domain.ComplexityEasy, Kind: domain.KindPermanent,
			Durations: domain.UniformTable(60),
		},
		{
			ID: Curls, Name: "Curls", NameRu: "Кудри",
			Complexity: domain.ComplexityEasy, Kind: domain.KindPermanent,
			Durations: table(row{60, 60, 90}, row{60, 60, 90}, row{60, 60, 90}),
		},
		{
			ID: Hairstyle, Name: "Hairstyle", NameRu: "Прическа",
			Complexity: domain.ComplexityDifficult, Kind: domain.KindPermanent,
			Durations: table(row{60, 60, 60}, row{60, 60, 90}, row{90, 90, 90}),
		},
		{
			ID: HairExtFull, Name: "Hair ext full", NameRu: "Полное наращивание волос",
			Complexity: domain.ComplexityAverage, Kind: domain.KindPermanent,
			FixedMinutes: 120,
		},
		{
			ID: HairExtTemple, Name: "Hair ext temple", NameRu: "Височное наращивание волос",
			Complexity: domain.ComplexityAverage, Kind: domain.KindPermanent,
			FixedMinutes: 40,
		},
		{
			ID: Highlights, Name: "Highlights", NameRu: "Мелирование",
			Complexity: domain.ComplexityAverage, Kind: domain.KindNonPermanent,
			Stage1:      table(row{60, 90, 90}, row{90, 90, 120}, row{120, 150, 180}),
			WaitMinutes: 60,
			Stage3:      table(row{60, 60, 90}, row{90, 90, 90}, row{90, 90, 90}),
		},
		{
			ID: HairCheck, Name: "Hair check", NameRu: "Проверка волос",
			Complexity: domain.ComplexityEasy, Kind: domain.KindPermanent,
			FixedMinutes: 15,
			Hidden:       true,
		},
	}
}

// Default каталог со встроенными процедурами салона
func Default() *Catalog {
	c, err := New(DefaultProcedures())
	if err != nil {
		// встроенные таблицы покрыты тестами
		panic(err)
	}
	return c
}
