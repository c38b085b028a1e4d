package importer

type csvReader struct{}

func (csvReader) CanRead(path string) bool { return hasExt(path, ".csv") }

func (csvReader) Units(path string) ([]Unit, error) {
	return []Unit{{Name: baseName(path), SourcePath: path}}, nil
}
