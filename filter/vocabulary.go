package filter

import "strings"

// Titles containing any of these are never the part itself.
var irrelevantKeywords = []string{
	"kit de reparo",
	"kit reparo",
	"manual do proprietário",
	"manual do proprietario",
	"manual de serviço",
	"manual de servico",
	"apostila",
	"adesivo",
	"adesivos",
	"decalque",
	"miniatura",
	"brinquedo",
	"réplica",
	"replica",
	"escala 1:",
	"hot wheels",
	"camiseta",
	"boné",
	"jaqueta",
	"chaveiro",
	"caneca",
	"poster",
	"pôster",
	"quadro decorativo",
	"livro",
	"revista",
	"dvd",
	"capa de chave",
}

// Titles marketed as fitting any vehicle.
var universalKeywords = []string{
	"universal",
	"genérico",
	"generico",
	"genérica",
	"generica",
	"multimarca",
	"multimarcas",
	"multi marcas",
	"várias marcas",
	"varias marcas",
	"todos os modelos",
}

// Titles advertising a part in poor condition.
var damagedKeywords = []string{
	"quebrado",
	"quebrada",
	"danificado",
	"danificada",
	"batido",
	"batida",
	"defeito",
	"defeituoso",
	"defeituosa",
	"trincado",
	"trincada",
	"rachado",
	"rachada",
	"avariado",
	"avariada",
	"sucata",
	"para retirada de peças",
	"no estado",
}

// containsAny expects text to be lower-cased already.
func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
