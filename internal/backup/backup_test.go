package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"everyday/internal/storage"
)

// createTestData creates a sample habit data file for testing.
func createTestData(t *testing.T, dataDir string) {
	t.Helper()

	envelope := map[string]interface{}{
		"version": 1,
		"habits": []map[string]interface{}{
			{
				"id":             "h_read",
				"name":           "Read",
				"color":          "mint",
				"completedDates": []string{"2025-12-14", "2025-12-15"},
				"notes":          "",
				"createdAt":      1765000000000,
			},
			{
				"id":             "h_run",
				"name":           "Run",
				"color":          "coral",
				"completedDates": []string{"2025-12-15"},
				"notes":          "5k",
				"createdAt":      1765000100000,
			},
		},
		"timestamp": "2025-12-15T14:30:00Z",
	}
	writeTestJSON(t, filepath.Join(dataDir, storage.DataFile), envelope)
}

// writeTestJSON writes JSON to a file for testing.
func writeTestJSON(t *testing.T, path string, v interface{}) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// readTestJSON reads JSON from a file for testing.
func readTestJSON(t *testing.T, path string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}

	return result
}

// TestManager_Create tests backup creation.
func TestManager_Create(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.2.0-test")

	// Create backup
	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Verify backup name format (2006-01-02_150405_XXX where XXX is milliseconds)
	if len(name) != 21 {
		t.Errorf("Expected backup name length 21, got %d: %s", len(name), name)
	}

	// Verify backup directory exists
	backupPath := filepath.Join(tmpDir, BackupsDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Errorf("Backup directory not created: %s", backupPath)
	}

	// Verify the data file was copied
	if _, err := os.Stat(filepath.Join(backupPath, storage.DataFile)); os.IsNotExist(err) {
		t.Errorf("File not backed up: %s", storage.DataFile)
	}

	// Verify manifest
	manifestPath := filepath.Join(backupPath, ManifestFile)
	manifest := readTestJSON(t, manifestPath)

	if manifest["version"] != ManifestVersion {
		t.Errorf("Expected manifest version %s, got %v", ManifestVersion, manifest["version"])
	}

	if manifest["app_version"] != "1.2.0-test" {
		t.Errorf("Expected app_version 1.2.0-test, got %v", manifest["app_version"])
	}

	// Verify stats
	stats, ok := manifest["stats"].(map[string]interface{})
	if !ok {
		t.Fatal("Stats not found in manifest")
	}

	if int(stats["habits"].(float64)) != 2 {
		t.Errorf("Expected 2 habits, got %v", stats["habits"])
	}

	if int(stats["completions"].(float64)) != 3 {
		t.Errorf("Expected 3 completions, got %v", stats["completions"])
	}
}

// TestManager_List tests listing backups.
func TestManager_List(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// No backups initially
	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("Expected 0 backups, got %d", len(backups))
	}

	// Create some backups
	name1, _ := manager.Create()
	time.Sleep(10 * time.Millisecond)
	name2, _ := manager.Create()

	// List should return both, newest first
	backups, err = manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if len(backups) != 2 {
		t.Fatalf("Expected 2 backups, got %d", len(backups))
	}

	// Newest should be first
	if backups[0].Name != name2 {
		t.Errorf("Expected newest backup %s first, got %s", name2, backups[0].Name)
	}

	if backups[1].Name != name1 {
		t.Errorf("Expected older backup %s second, got %s", name1, backups[1].Name)
	}
}

// TestManager_Restore tests restoring from a backup.
func TestManager_Restore(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// Create backup
	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Modify original data
	envelope := map[string]interface{}{
		"version": 1,
		"habits": []map[string]interface{}{
			{"id": "h_new", "name": "New Habit", "color": "sky"},
		},
		"timestamp": "2025-12-16T09:00:00Z",
	}
	writeTestJSON(t, filepath.Join(tmpDir, storage.DataFile), envelope)

	// Verify modification
	modified := readTestJSON(t, filepath.Join(tmpDir, storage.DataFile))
	modifiedHabits := modified["habits"].([]interface{})
	if len(modifiedHabits) != 1 {
		t.Fatalf("Expected 1 habit after modification, got %d", len(modifiedHabits))
	}

	// Restore
	if err := manager.Restore(name); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	// Verify restoration
	restored := readTestJSON(t, filepath.Join(tmpDir, storage.DataFile))
	restoredHabits := restored["habits"].([]interface{})
	if len(restoredHabits) != 2 {
		t.Errorf("Expected 2 habits after restore, got %d", len(restoredHabits))
	}
}

// TestManager_RestoreLatest tests restoring the most recent backup.
func TestManager_RestoreLatest(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// Create first backup
	_, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Modify data
	envelope := map[string]interface{}{
		"habits": []map[string]interface{}{
			{"id": "h_modified", "name": "Modified Habit"},
		},
	}
	writeTestJSON(t, filepath.Join(tmpDir, storage.DataFile), envelope)

	// Create second backup (with modified data)
	time.Sleep(10 * time.Millisecond)
	_, err = manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Modify again
	envelope = map[string]interface{}{
		"habits": []map[string]interface{}{
			{"id": "h_final", "name": "Final Habit"},
		},
	}
	writeTestJSON(t, filepath.Join(tmpDir, storage.DataFile), envelope)

	// Restore latest (should restore the second backup with "Modified Habit")
	if err := manager.RestoreLatest(); err != nil {
		t.Fatalf("RestoreLatest() error: %v", err)
	}

	// Verify restoration
	restored := readTestJSON(t, filepath.Join(tmpDir, storage.DataFile))
	restoredHabits := restored["habits"].([]interface{})
	if len(restoredHabits) != 1 {
		t.Fatalf("Expected 1 habit after restore, got %d", len(restoredHabits))
	}

	first := restoredHabits[0].(map[string]interface{})
	if first["id"] != "h_modified" {
		t.Errorf("Expected restored habit id 'h_modified', got %v", first["id"])
	}
}

// TestManager_RestoreNonexistent tests restoring a nonexistent backup.
func TestManager_RestoreNonexistent(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	err := manager.Restore("nonexistent-backup")
	if err == nil {
		t.Error("Expected error when restoring nonexistent backup")
	}
}

// TestManager_Delete tests deleting a backup.
func TestManager_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// Create backup
	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Delete backup
	if err := manager.Delete(name); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	// Verify deletion
	backups, _ := manager.List()
	if len(backups) != 0 {
		t.Errorf("Expected 0 backups after delete, got %d", len(backups))
	}
}

// TestManager_Prune tests pruning old backups.
func TestManager_Prune(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// Create 5 backups
	for i := 0; i < 5; i++ {
		_, err := manager.Create()
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		time.Sleep(10 * time.Millisecond) // Ensure different timestamps
	}

	// Prune, keeping only 2
	deleted, err := manager.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}

	if deleted != 3 {
		t.Errorf("Expected 3 deleted, got %d", deleted)
	}

	// Verify only 2 remain
	backups, _ := manager.List()
	if len(backups) != 2 {
		t.Errorf("Expected 2 backups after prune, got %d", len(backups))
	}
}

// TestManager_CreateWithEmptyData tests creating a backup with no data file.
func TestManager_CreateWithEmptyData(t *testing.T) {
	tmpDir := t.TempDir()

	// Don't create any data file
	manager := NewManager(tmpDir, "1.0.0")

	// Should still create a backup (with empty file list)
	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Verify backup was created
	info, err := manager.GetBackup(name)
	if err != nil {
		t.Fatalf("GetBackup() error: %v", err)
	}

	if info.Name != name {
		t.Errorf("Expected backup name %s, got %s", name, info.Name)
	}
}

// TestManager_GetBackup tests getting info about a specific backup.
func TestManager_GetBackup(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// Create backup
	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Get backup info
	info, err := manager.GetBackup(name)
	if err != nil {
		t.Fatalf("GetBackup() error: %v", err)
	}

	if info.Name != name {
		t.Errorf("Expected name %s, got %s", name, info.Name)
	}

	if info.Stats["habits"] != 2 {
		t.Errorf("Expected 2 habits, got %d", info.Stats["habits"])
	}

	// Get nonexistent backup
	_, err = manager.GetBackup("nonexistent")
	if err == nil {
		t.Error("Expected error for nonexistent backup")
	}
}

// TestManager_RestoreCreatesSafetyBackup tests that restore creates a safety backup.
func TestManager_RestoreCreatesSafetyBackup(t *testing.T) {
	tmpDir := t.TempDir()
	createTestData(t, tmpDir)

	manager := NewManager(tmpDir, "1.0.0")

	// Create initial backup
	name, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Restore should create a safety backup
	if err := manager.Restore(name); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	// Should now have at least 2 backups (original + safety)
	backups, _ := manager.List()
	if len(backups) < 2 {
		t.Errorf("Expected at least 2 backups (including safety backup), got %d", len(backups))
	}
}
