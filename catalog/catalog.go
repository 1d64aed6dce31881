package catalog

var defaultNormalizer = mustNormalizer()

func mustNormalizer() *Normalizer {
	normalizer, err := NewNormalizer()
	if err != nil {
		panic(err)
	}
	return normalizer
}

func ToAPICatalog(source Catalog) (APICatalog, error) {
	return defaultNormalizer.ToAPICatalog(source)
}

func ConfiguredToAPICatalog(source ConfiguredCatalog) (APICatalog, error) {
	return defaultNormalizer.ConfiguredToAPICatalog(source)
}

func ToConfiguredCatalog(source APICatalog) (ConfiguredCatalog, error) {
	return defaultNormalizer.ToConfiguredCatalog(source)
}
