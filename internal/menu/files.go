package menu

import (
	"github.com/dustin/go-humanize"
	"github.com/jjtimmons/seqtools/internal/store"
)

// openFile asks for a sequence file and reads it. A bad name, missing file or
// unknown format is asked for once more; if that fails too ok is false
func (m *Menu) openFile(p string) (records []*store.Record, ok bool, err error) {
	for attempt := 0; attempt < 2; attempt++ {
		ask := p
		if attempt > 0 {
			ask = "\nInvalid filename. " + p
		}

		name, err := m.prompt(ask)
		if err != nil {
			return nil, false, err
		}

		records, err := m.opts.Store.Open(name)
		if err == nil {
			return records, true, nil
		}
		if !store.IsRecoverable(err) {
			return nil, false, err
		}
		m.printf("%s\n", m.color(err.Error(), "yellow"))
	}
	return nil, false, nil
}

// outputName asks for an output file name, once more if it's blank.
// ok is false if both answers are blank
func (m *Menu) outputName(p string) (name string, ok bool, err error) {
	for attempt := 0; attempt < 2; attempt++ {
		ask := p
		if attempt > 0 {
			ask = "\nInvalid filename. " + p
		}

		name, err := m.prompt(ask)
		if err != nil {
			return "", false, err
		}
		if name != "" {
			return name, true, nil
		}
	}
	return "", false, nil
}

// save writes records to path and reports where they went. Input problems
// (like an unsupported extension) are reported and ok is false
func (m *Menu) save(records []*store.Record, path, what string) (ok bool, err error) {
	n, err := m.opts.Store.Save(records, path)
	if err != nil {
		if store.IsRecoverable(err) {
			m.printf("%s\n", m.color(err.Error(), "yellow"))
			return false, nil
		}
		return false, err
	}

	m.printf("\nThe file containing the %s is stored at: %s (%d sequences, %s)\n",
		what, path, len(records), humanize.Bytes(uint64(n)))
	return true, nil
}

// transform is the flow shared by the single-file actions: read a file,
// change its records, save them to an output file
func (m *Menu) transform(what string, change func([]*store.Record) []*store.Record) error {
	records, ok, err := m.openFile("\nPlease enter the input sequence filename: ")
	if err != nil || !ok {
		return err
	}

	out, ok, err := m.outputName("\nPlease enter the output filename: ")
	if err != nil || !ok {
		return err
	}

	_, err = m.save(change(records), out, what)
	return err
}
